package processor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/environment"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// ConflictError is returned by a strict Registry when two kinds write the same property in
// one run, typically because bindings of two relational kinds compete for spring.datasource.*.
type ConflictError struct {
	Key          string
	Kind         string
	PreviousKind string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("property %q derived from %q bindings is already set from %q bindings", e.Key, e.Kind, e.PreviousKind)
}

// Registry runs a fixed, ordered list of processors over a set of bindings.
type Registry struct {
	processors []Processor
	// Strict turns a property written by two kinds into a *ConflictError. Otherwise the kind
	// processed last wins and the collision is logged.
	Strict bool
}

// NewRegistry returns a Registry running the given processors in order. Two processors for
// the same kind are rejected.
func NewRegistry(processors ...Processor) (*Registry, error) {
	r := &Registry{}
	for _, p := range processors {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a Registry with every built-in processor, ordered by kind.
func Default() *Registry {
	return &Registry{
		processors: []Processor{
			Artemis(),
			Cassandra(),
			Couchbase(),
			DB2(),
			Elasticsearch(),
			HANA(),
			Kafka(),
			LDAP(),
			MongoDB(),
			MySQL(),
			Neo4j(),
			Oracle(),
			PostgreSQL(),
			RabbitMQ(),
			Redis(),
			SQLServer(),
			Wavefront(),
		},
	}
}

// Register appends p to the processors run by the registry.
func (r *Registry) Register(p Processor) error {
	if p == nil {
		return errors.New("processor must not be nil")
	}
	for _, existing := range r.processors {
		if strings.EqualFold(existing.Kind(), p.Kind()) {
			return errors.Errorf("processor for kind %q is already registered", p.Kind())
		}
	}
	r.processors = append(r.processors, p)
	return nil
}

// Kinds returns the kinds handled by the registry, in processing order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.processors))
	for _, p := range r.processors {
		kinds = append(kinds, p.Kind())
	}
	return kinds
}

// Process translates bindings into properties. Each processor writes into its own
// accumulator which is then merged into the result, so a later kind overwrites the keys an
// earlier kind wrote. A processor error stops the run, as does a property claimed by two kinds
// when the registry is strict. No property is produced when translation is globally disabled.
func (r *Registry) Process(env environment.Environment, bindings binding.Bindings) (properties.Properties, error) {
	result := properties.New()
	if !environment.IsGlobalEnabled(env) {
		log.Info("Binding translation disabled", "key", environment.GlobalEnableKey)
		return result, nil
	}

	owners := make(map[string]string)
	for _, p := range r.processors {
		contributed := properties.New()
		if err := p.Process(env, bindings, contributed); err != nil {
			return nil, errors.Wrapf(err, "unable to process %s bindings", p.Kind())
		}
		for _, key := range contributed.Keys() {
			if previous, ok := owners[key]; ok && previous != p.Kind() {
				if r.Strict {
					return nil, &ConflictError{Key: key, Kind: p.Kind(), PreviousKind: previous}
				}
				log.Warning("Property overwritten by another kind", "key", key, "kind", p.Kind(), "previousKind", previous)
			}
			owners[key] = p.Kind()
		}
		if err := result.Merge(contributed); err != nil {
			return nil, errors.Wrapf(err, "unable to merge %s properties", p.Kind())
		}
		if len(contributed) > 0 {
			log.Debug("Contributed properties", "kind", p.Kind(), "keys", contributed.Keys())
		}
	}
	log.Info("Translated bindings", "bindings", len(bindings), "properties", len(result))
	return result, nil
}
