package command

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
	"github.com/redhat-developer/service-binding-properties/pkg/watch"
)

// Options holds the command line configuration of bindings-properties.
type Options struct {
	Root          string
	Namespace     string
	Selector      string
	MountRoot     string
	ConfigFile    string
	Format        string
	Output        string
	ProbeTimeout  time.Duration
	WatchInterval time.Duration
	Strict        bool
}

// RegisterFlags binds the options to flags.
func (o *Options) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Root, "root", "", "Directory holding one subdirectory per binding. Defaults to $SERVICE_BINDING_ROOT, then $CNB_BINDINGS.")
	flags.StringVarP(&o.Namespace, "namespace", "n", "", "Read bindings from the Secrets of this Kubernetes namespace instead of the filesystem.")
	flags.StringVarP(&o.Selector, "selector", "l", "", "Label selector restricting the Secrets read with --namespace.")
	flags.StringVar(&o.MountRoot, "mount-root", "/bindings", "Directory the Secrets read with --namespace are mounted under, used for file references such as sslrootcert.")
	flags.StringVar(&o.ConfigFile, "config", "", "Properties or YAML file enabling or disabling kinds, e.g. org.springframework.cloud.bindings.boot.redis.enable=false.")
	flags.StringVarP(&o.Format, "format", "f", string(properties.FormatProperties), "Output format: properties, env, json or yaml.")
	flags.StringVarP(&o.Output, "output", "o", "", "File to write the properties to. Defaults to standard output.")
	flags.DurationVar(&o.ProbeTimeout, "probe-timeout", probe.DefaultTimeout, "Timeout of a single connectivity probe.")
	flags.BoolVar(&o.Strict, "strict", false, "Fail when bindings of two kinds write the same property, e.g. a postgresql and a mysql binding, instead of keeping the kind processed last.")
	flags.DurationVar(&o.WatchInterval, "watch-interval", watch.DefaultInterval, "Minimal delay between two translations in watch mode.")
}
