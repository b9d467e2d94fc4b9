package binding

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/redhat-developer/service-binding-properties/pkg/environment"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

const (
	// ServiceBindingRootEnvVar names the directory holding Kubernetes Service Binding projections.
	ServiceBindingRootEnvVar = "SERVICE_BINDING_ROOT"
	// CNBBindingsEnvVar names the directory holding legacy Cloud Native Buildpacks bindings.
	CNBBindingsEnvVar = "CNB_BINDINGS"

	metadataDir = "metadata"
	secretDir   = "secret"
)

var log = logging.Logger("binding")

// FromEnvironment discovers the bindings below the directory named by SERVICE_BINDING_ROOT,
// or CNB_BINDINGS when the former is not set. No bindings are returned when neither is set.
func FromEnvironment(env environment.Environment) (Bindings, error) {
	for _, key := range []string{ServiceBindingRootEnvVar, CNBBindingsEnvVar} {
		if root, ok := env.Lookup(key); ok && root != "" {
			return FromPath(root)
		}
	}
	log.Debug("No binding root configured")
	return Bindings{}, nil
}

// FromPath discovers one binding per subdirectory of root. Both the Kubernetes Service
// Binding layout (one file per entry, kind in "type") and the legacy CNB layout ("metadata"
// and "secret" subdirectories, kind in "kind") are understood. A missing root is not an error.
func FromPath(root string) (Bindings, error) {
	entries, err := ioutil.ReadDir(root)
	if os.IsNotExist(err) {
		log.Debug("Binding root does not exist", "root", root)
		return Bindings{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list bindings in %q", root)
	}

	bindings := make(Bindings, 0, len(entries))
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		path := filepath.Join(root, e.Name())
		isDir, err := isDirectory(path)
		if err != nil {
			return nil, err
		}
		if !isDir {
			continue
		}
		b, err := readBinding(e.Name(), path)
		if err != nil {
			return nil, err
		}
		log.Debug("Discovered binding", "name", b.Name(), "kind", b.Kind(), "path", path)
		bindings = append(bindings, b)
	}
	return bindings, nil
}

func readBinding(name, path string) (Binding, error) {
	legacy, err := isLegacyLayout(path)
	if err != nil {
		return Binding{}, err
	}
	if legacy {
		metadata, err := readEntries(filepath.Join(path, metadataDir))
		if err != nil {
			return Binding{}, err
		}
		secret, err := readEntries(filepath.Join(path, secretDir))
		if err != nil {
			return Binding{}, err
		}
		return New(name, path, metadata, secret), nil
	}

	entries, err := readEntries(path)
	if err != nil {
		return Binding{}, err
	}
	metadata := make(map[string]string)
	for _, key := range []string{TypeKey, ProviderKey} {
		if v, ok := entries[key]; ok {
			metadata[key] = v
			delete(entries, key)
		}
	}
	return New(name, path, metadata, entries), nil
}

func isLegacyLayout(path string) (bool, error) {
	for _, d := range []string{metadataDir, secretDir} {
		ok, err := isDirectory(filepath.Join(path, d))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// readEntries reads every regular, non hidden file of dir into a map keyed by file name.
func readEntries(dir string) (map[string]string, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list binding entries in %q", dir)
	}
	result := make(map[string]string, len(files))
	for _, f := range files {
		if isHidden(f.Name()) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		isDir, err := isDirectory(path)
		if err != nil {
			return nil, err
		}
		if isDir {
			continue
		}
		content, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read binding entry %q", path)
		}
		result[f.Name()] = strings.TrimSpace(string(content))
	}
	return result, nil
}

// isDirectory follows symlinks, as Kubernetes projects entries through "..data" links.
func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "unable to stat %q", path)
	}
	return info.IsDir(), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
