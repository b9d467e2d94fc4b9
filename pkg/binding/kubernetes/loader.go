package kubernetes

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	k8s "k8s.io/client-go/kubernetes"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

// DefaultMountRoot is where bindings are projected when no SERVICE_BINDING_ROOT is given.
const DefaultMountRoot = "/bindings"

var log = logging.Logger("binding.kubernetes")

// Loader discovers bindings from the Secrets of a namespace. Every Secret carrying a "type"
// entry, as produced for the Service Binding specification, becomes one Binding.
type Loader struct {
	Client    k8s.Interface
	Namespace string
	// Selector is an optional label selector restricting the Secrets considered.
	Selector string
	// MountRoot is the directory the Secrets are projected under in the workload; it is
	// only used to compute binding paths.
	MountRoot string
}

// Load lists the Secrets and converts them into bindings, sorted by name.
func (l *Loader) Load(ctx context.Context) (binding.Bindings, error) {
	if l.Selector != "" {
		if _, err := labels.Parse(l.Selector); err != nil {
			return nil, errors.Wrapf(err, "invalid label selector %q", l.Selector)
		}
	}
	list, err := l.Client.CoreV1().Secrets(l.Namespace).List(ctx, metav1.ListOptions{LabelSelector: l.Selector})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list secrets in namespace %q", l.Namespace)
	}

	secrets := list.Items
	sort.Slice(secrets, func(i, j int) bool {
		return secrets[i].Name < secrets[j].Name
	})

	mountRoot := l.MountRoot
	if mountRoot == "" {
		mountRoot = DefaultMountRoot
	}
	bindings := make(binding.Bindings, 0, len(secrets))
	for i := range secrets {
		b, ok := FromSecret(&secrets[i], mountRoot)
		if !ok {
			log.Trace("Skipping secret without binding type", "namespace", l.Namespace, "name", secrets[i].Name)
			continue
		}
		log.Debug("Discovered binding", "namespace", l.Namespace, "name", b.Name(), "kind", b.Kind())
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// FromSecret converts a Secret into a Binding. The second value is false when the Secret has
// no "type" entry.
func FromSecret(secret *corev1.Secret, mountRoot string) (binding.Binding, bool) {
	entries := make(map[string]string, len(secret.Data)+len(secret.StringData))
	for k, v := range secret.Data {
		entries[k] = strings.TrimSpace(string(v))
	}
	for k, v := range secret.StringData {
		entries[k] = strings.TrimSpace(v)
	}
	if entries[binding.TypeKey] == "" {
		return binding.Binding{}, false
	}

	metadata := make(map[string]string)
	for _, key := range []string{binding.TypeKey, binding.ProviderKey} {
		if v, ok := entries[key]; ok {
			metadata[key] = v
			delete(entries, key)
		}
	}
	return binding.New(secret.Name, filepath.Join(mountRoot, secret.Name), metadata, entries), true
}
