package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/renameio"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	k8s "k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/client/config"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/binding/kubernetes"
	"github.com/redhat-developer/service-binding-properties/pkg/environment"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
	"github.com/redhat-developer/service-binding-properties/pkg/watch"
)

const (
	RenderCommand = "render"
	ProbeCommand  = "probe"
	WatchCommand  = "watch"
)

// Commands lists the supported sub-commands.
var Commands = []string{RenderCommand, ProbeCommand, WatchCommand}

var log = logging.Logger("command")

// Runner executes the bindings-properties sub-commands.
type Runner struct {
	Options
	Registry *processor.Registry
	// Env is consulted after the --config file, the process environment when nil.
	Env environment.Environment
	// NewClient builds the Kubernetes client used with --namespace.
	NewClient func() (k8s.Interface, error)
	Prober    *probe.Prober
	Out       io.Writer
}

// NewRunner returns a Runner wired with the built-in processors, the process environment
// and the in-cluster or kubeconfig Kubernetes client.
func NewRunner(opts Options, out io.Writer) *Runner {
	registry := processor.Default()
	registry.Strict = opts.Strict
	return &Runner{
		Options:   opts,
		Registry:  registry,
		Env:       environment.OS{},
		NewClient: defaultClient,
		Prober:    probe.New(opts.ProbeTimeout),
		Out:       out,
	}
}

func defaultClient() (k8s.Interface, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, errors.Wrap(err, "unable to load Kubernetes configuration")
	}
	return k8s.NewForConfig(cfg)
}

// Run executes the named sub-command.
func (r *Runner) Run(ctx context.Context, command string) error {
	switch command {
	case RenderCommand:
		return r.Render(ctx)
	case ProbeCommand:
		return r.Probe(ctx)
	case WatchCommand:
		return r.Watch(ctx)
	default:
		return errors.Errorf("unknown command %q, expected one of %s", command, strings.Join(Commands, ", "))
	}
}

func (r *Runner) environment() (environment.Environment, error) {
	base := r.Env
	if base == nil {
		base = environment.OS{}
	}
	if r.ConfigFile == "" {
		return base, nil
	}
	file, err := environment.FromFile(r.ConfigFile)
	if err != nil {
		return nil, err
	}
	return environment.Chain{file, base}, nil
}

func (r *Runner) bindings(ctx context.Context, env environment.Environment) (binding.Bindings, error) {
	switch {
	case r.Namespace != "":
		client, err := r.NewClient()
		if err != nil {
			return nil, err
		}
		l := &kubernetes.Loader{Client: client, Namespace: r.Namespace, Selector: r.Selector, MountRoot: r.MountRoot}
		return l.Load(ctx)
	case r.Root != "":
		return binding.FromPath(r.Root)
	default:
		return binding.FromEnvironment(env)
	}
}

// Render translates the bindings and writes the resulting properties.
func (r *Runner) Render(ctx context.Context) error {
	format, err := properties.ParseFormat(r.Format)
	if err != nil {
		return err
	}
	env, err := r.environment()
	if err != nil {
		return err
	}
	bindings, err := r.bindings(ctx, env)
	if err != nil {
		return err
	}
	props, err := r.Registry.Process(env, bindings)
	if err != nil {
		return err
	}

	if r.Output == "" {
		return properties.Write(r.Out, props, format)
	}
	var buf bytes.Buffer
	if err := properties.Write(&buf, props, format); err != nil {
		return err
	}
	if err := renameio.WriteFile(r.Output, buf.Bytes(), 0600); err != nil {
		return errors.Wrapf(err, "unable to write %q", r.Output)
	}
	log.Info("Wrote properties", "file", r.Output, "count", len(props))
	return nil
}

// Probe checks the connectivity of every probeable binding and prints a summary table.
func (r *Runner) Probe(ctx context.Context) error {
	env, err := r.environment()
	if err != nil {
		return err
	}
	bindings, err := r.bindings(ctx, env)
	if err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("NAME", "KIND", "STATUS")
	failed := 0
	for _, b := range bindings {
		err := r.Prober.Probe(ctx, b)
		switch {
		case err == nil:
			table.AddRow(b.Name(), b.Kind(), "OK")
		case errors.Cause(err) == probe.ErrUnsupportedKind:
			table.AddRow(b.Name(), b.Kind(), "SKIPPED")
		default:
			failed++
			table.AddRow(b.Name(), b.Kind(), "FAILED: "+err.Error())
		}
	}
	if _, err := fmt.Fprintln(r.Out, table); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d of %d bindings unreachable", failed, len(bindings))
	}
	return nil
}

// Watch renders the properties now and whenever the binding root changes.
func (r *Runner) Watch(ctx context.Context) error {
	if r.Namespace != "" {
		return errors.New("watch reads bindings from the filesystem and cannot be combined with --namespace")
	}
	root := r.Root
	if root == "" {
		env, err := r.environment()
		if err != nil {
			return err
		}
		for _, key := range []string{binding.ServiceBindingRootEnvVar, binding.CNBBindingsEnvVar} {
			if v, ok := env.Lookup(key); ok && v != "" {
				root = v
				break
			}
		}
	}
	if root == "" {
		return errors.New("no binding root to watch, use --root or set SERVICE_BINDING_ROOT")
	}

	w := &watch.Watcher{Root: root, Interval: r.WatchInterval}
	rendering := *r
	rendering.Root = root
	return w.Run(ctx, func() error {
		return rendering.Render(ctx)
	})
}
