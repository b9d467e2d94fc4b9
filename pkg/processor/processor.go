package processor

import (
	"github.com/pkg/errors"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/environment"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

//go:generate mockgen -destination=mocks/mocks_processor.go -package=mocks . Processor

var log = logging.Logger("processor")

// Processor translates the bindings of a single kind into configuration properties.
type Processor interface {
	// Kind is the binding kind the processor handles, e.g. "postgresql".
	Kind() string
	// Process adds the properties derived from every binding of Kind to props. Nothing is
	// written when the kind is disabled in env.
	Process(env environment.Environment, bindings binding.Bindings, props properties.Properties) error
}

// BindingFunc derives properties from one binding. Values written for a key replace any
// value written before, including those derived from earlier bindings of the same kind.
type BindingFunc func(b binding.Binding, props properties.Properties) error

type kindProcessor struct {
	kind string
	fn   BindingFunc
}

// New returns a Processor running fn for every binding of kind, guarded by
// environment.IsTypeEnabled.
func New(kind string, fn BindingFunc) Processor {
	return &kindProcessor{kind: kind, fn: fn}
}

func (p *kindProcessor) Kind() string {
	return p.kind
}

func (p *kindProcessor) Process(env environment.Environment, bindings binding.Bindings, props properties.Properties) error {
	if !environment.IsTypeEnabled(env, p.kind) {
		log.Debug("Processor disabled", "kind", p.kind, "key", environment.TypeEnableKey(p.kind))
		return nil
	}
	for _, b := range bindings.Filter(p.kind) {
		log.Debug("Processing binding", "kind", p.kind, "name", b.Name())
		if err := p.fn(b, props); err != nil {
			return errors.Wrapf(err, "unable to process binding %q", b.Name())
		}
	}
	return nil
}
