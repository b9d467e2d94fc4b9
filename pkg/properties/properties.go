package properties

import (
	"sort"

	"github.com/imdario/mergo"
)

// Properties accumulates configuration property values keyed by their dotted name, e.g.
// "spring.datasource.url". One instance lives for a single translation run.
type Properties map[string]string

// New returns an empty accumulator.
func New() Properties {
	return Properties{}
}

// Put stores value under key, replacing any previous value.
func (p Properties) Put(key, value string) {
	p[key] = value
}

func (p Properties) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// Keys returns the property names in lexical order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every entry of src into p, overriding values already present.
func (p Properties) Merge(src Properties) error {
	if len(src) == 0 {
		return nil
	}
	return mergo.Merge(&p, src, mergo.WithOverride)
}
