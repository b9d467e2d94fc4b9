package binding

import (
	"os"
	"strings"
)

const (
	// KindKey is the metadata key of the legacy CNB layout naming the service kind.
	KindKey = "kind"
	// TypeKey is the entry naming the service kind in the Kubernetes Service Binding layout.
	TypeKey = "type"
	// ProviderKey is the optional entry naming the service provider.
	ProviderKey = "provider"
)

// Binding is a single service binding: a named directory carrying the kind of the bound
// service together with the secret values needed to connect to it.
type Binding struct {
	name     string
	path     string
	metadata map[string]string
	secret   map[string]string
}

// New returns a Binding. The metadata and secret maps are copied, so later changes made by
// the caller are not visible through the Binding.
func New(name, path string, metadata, secret map[string]string) Binding {
	return Binding{
		name:     name,
		path:     path,
		metadata: copyMap(metadata),
		secret:   copyMap(secret),
	}
}

func (b Binding) Name() string {
	return b.name
}

func (b Binding) Path() string {
	return b.path
}

// Metadata returns a copy of the binding metadata.
func (b Binding) Metadata() map[string]string {
	return copyMap(b.metadata)
}

// Secret returns a copy of the binding secret values.
func (b Binding) Secret() map[string]string {
	return copyMap(b.secret)
}

// Kind returns the kind of the bound service, looking at "kind" first and "type" second.
func (b Binding) Kind() string {
	if k, ok := b.metadata[KindKey]; ok && k != "" {
		return k
	}
	return b.metadata[TypeKey]
}

func (b Binding) Provider() string {
	return b.metadata[ProviderKey]
}

// Get returns the secret value stored under key.
func (b Binding) Get(key string) (string, bool) {
	v, ok := b.secret[key]
	return v, ok
}

// GetOrDefault returns the secret value stored under key, or def when the key is absent.
func (b Binding) GetOrDefault(key, def string) string {
	if v, ok := b.secret[key]; ok {
		return v
	}
	return def
}

// SecretFilePath returns the location of a file referenced by the secret value stored under
// key, relative to the binding path. The path is joined with the platform separator and is
// not cleaned.
func (b Binding) SecretFilePath(key string) string {
	return b.path + string(os.PathSeparator) + b.secret[key]
}

// Bindings is an ordered collection of Binding.
type Bindings []Binding

// Filter returns the bindings whose kind matches the given kind, ignoring case. Order is
// preserved and a new slice is returned on every call.
func (b Bindings) Filter(kind string) Bindings {
	result := make(Bindings, 0)
	for _, binding := range b {
		if strings.EqualFold(binding.Kind(), kind) {
			result = append(result, binding)
		}
	}
	return result
}

// Kinds returns the distinct kinds present in the collection, in order of first appearance.
func (b Bindings) Kinds() []string {
	seen := make(map[string]bool)
	var kinds []string
	for _, binding := range b {
		k := strings.ToLower(binding.Kind())
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
