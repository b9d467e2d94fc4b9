package environment

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	javaprops "github.com/magiconair/properties"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// FromFile loads an Environment from a Java properties file or from a YAML/JSON document.
// Nested YAML keys are flattened with dots, so
//
//	org:
//	  springframework:
//	    cloud.bindings.boot.enable: false
//
// answers the lookup of "org.springframework.cloud.bindings.boot.enable".
func FromFile(path string) (Map, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".properties":
		p, err := javaprops.LoadFile(path, javaprops.UTF8)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load properties file %q", path)
		}
		return Map(p.Map()), nil
	case ".yaml", ".yml", ".json":
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read %q", path)
		}
		return FromYAML(data)
	default:
		return nil, errors.Errorf("unsupported configuration file %q, expected .properties, .yaml, .yml or .json", path)
	}
}

// FromYAML parses a YAML (or JSON) document into a flat Environment.
func FromYAML(data []byte) (Map, error) {
	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to parse configuration document")
	}
	result := make(Map)
	flatten("", doc, result)
	return result, nil
}

func flatten(prefix string, value interface{}, into Map) {
	switch v := value.(type) {
	case map[string]interface{}:
		for k, nested := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, nested, into)
		}
	case nil:
		into[prefix] = ""
	default:
		into[prefix] = fmt.Sprintf("%v", v)
	}
}
