package processor

import (
	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// mapping copies the secret entry named from into the property named to.
type mapping struct {
	from string
	to   string
}

type mappings []mapping

// prefixed maps every key to the property of the same name below prefix.
func prefixed(prefix string, keys ...string) mappings {
	m := make(mappings, 0, len(keys))
	for _, k := range keys {
		m = append(m, mapping{from: k, to: prefix + k})
	}
	return m
}

func (m mappings) with(from, to string) mappings {
	return append(m, mapping{from: from, to: to})
}

// apply copies the entries present in the binding secret, in declaration order. Absent
// entries are skipped.
func (m mappings) apply(b binding.Binding, props properties.Properties) {
	for _, e := range m {
		if v, ok := b.Get(e.from); ok {
			props.Put(e.to, v)
		}
	}
}

// fields returns a Processor performing plain secret-to-property renames.
func fields(kind string, m mappings) Processor {
	return New(kind, func(b binding.Binding, props properties.Properties) error {
		m.apply(b, props)
		return nil
	})
}

// all returns the values of keys when every one of them is present in the binding secret.
func all(b binding.Binding, keys ...string) ([]string, bool) {
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := b.Get(k)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}
