package properties

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	javaprops "github.com/magiconair/properties"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/redhat-developer/service-binding-properties/pkg/environment"
)

// Format selects the encoding used by Write.
type Format string

const (
	FormatProperties Format = "properties"
	FormatEnv        Format = "env"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatProperties, FormatEnv, FormatJSON, FormatYAML}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown output format %q, expected one of %v", s, Formats)
}

// Write encodes props to w in the given format. Entries are written in key order.
func Write(w io.Writer, props Properties, format Format) error {
	switch format {
	case FormatProperties:
		return writeProperties(w, props)
	case FormatEnv:
		return writeEnv(w, props)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(map[string]string(props)), "unable to encode properties as JSON")
	case FormatYAML:
		out, err := yaml.Marshal(map[string]string(props))
		if err != nil {
			return errors.Wrap(err, "unable to encode properties as YAML")
		}
		_, err = w.Write(out)
		return err
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func writeProperties(w io.Writer, props Properties) error {
	p := javaprops.NewProperties()
	p.DisableExpansion = true
	for _, k := range props.Keys() {
		if _, _, err := p.Set(k, props[k]); err != nil {
			return errors.Wrapf(err, "unable to set property %q", k)
		}
	}
	_, err := p.Write(w, javaprops.UTF8)
	return errors.Wrap(err, "unable to write properties")
}

func writeEnv(w io.Writer, props Properties) error {
	for _, k := range props.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", environment.EnvVarName(k), shellquote.Join(props[k])); err != nil {
			return err
		}
	}
	return nil
}
