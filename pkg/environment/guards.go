package environment

import (
	"fmt"
	"strings"

	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

const (
	// GlobalEnableKey turns the whole translation on or off.
	GlobalEnableKey = "org.springframework.cloud.bindings.boot.enable"

	typeEnableKeyFormat = "org.springframework.cloud.bindings.boot.%s.enable"
)

var log = logging.Logger("environment")

// TypeEnableKey returns the property consulted by IsTypeEnabled for the given kind.
func TypeEnableKey(kind string) string {
	return fmt.Sprintf(typeEnableKeyFormat, kind)
}

// IsGlobalEnabled reports whether binding translation is enabled at all. Defaults to true.
func IsGlobalEnabled(env Environment) bool {
	return lookupBool(env, GlobalEnableKey, true)
}

// IsTypeEnabled reports whether the processor for kind should run. Defaults to true.
func IsTypeEnabled(env Environment, kind string) bool {
	return lookupBool(env, TypeEnableKey(kind), true)
}

func lookupBool(env Environment, key string, def bool) bool {
	if env == nil {
		return def
	}
	raw, ok := env.Lookup(key)
	if !ok || raw == "" {
		return def
	}
	v, ok := parseBool(raw)
	if !ok {
		log.Warning("Ignoring non-boolean value", "key", key, "value", raw)
		return def
	}
	return v
}

var (
	trueValues  = []string{"true", "on", "yes", "1"}
	falseValues = []string{"false", "off", "no", "0"}
)

// parseBool accepts the boolean spellings of Spring property conversion, ignoring case.
func parseBool(raw string) (value bool, ok bool) {
	raw = strings.TrimSpace(raw)
	for _, t := range trueValues {
		if strings.EqualFold(raw, t) {
			return true, true
		}
	}
	for _, f := range falseValues {
		if strings.EqualFold(raw, f) {
			return false, true
		}
	}
	return false, false
}
