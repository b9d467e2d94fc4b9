/*
Copyright 2021.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that --namespace can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/redhat-developer/service-binding-properties/pkg/command"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

var setupLog = logging.Logger("setup")

func usage(flags *pflag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: bindings-properties [flags] <render|probe|watch>\n\n")
		fmt.Fprintf(os.Stderr, "Translates service bindings into Spring Boot properties.\n\n")
		flags.PrintDefaults()
	}
}

func main() {
	var options command.Options
	flags := pflag.NewFlagSet("bindings-properties", pflag.ExitOnError)
	options.RegisterFlags(flags)

	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flags.AddGoFlagSet(flag.CommandLine)
	flags.Usage = usage(flags)
	_ = flags.Parse(os.Args[1:])

	logging.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	cmd := command.RenderCommand
	switch flags.NArg() {
	case 0:
	case 1:
		cmd = flags.Arg(0)
	default:
		flags.Usage()
		os.Exit(2)
	}

	runner := command.NewRunner(options, os.Stdout)
	setupLog.Debug("Running", "command", cmd)
	if err := runner.Run(ctrl.SetupSignalHandler(), cmd); err != nil {
		setupLog.Error(err, "command failed", "command", cmd)
		os.Exit(1)
	}
}
