package environment

import (
	"os"
	"strings"
)

// Environment answers configuration lookups. It is the only source the guards consult to
// decide whether translation is enabled.
type Environment interface {
	Lookup(key string) (string, bool)
}

// Map is an Environment backed by an in-memory map.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OS is an Environment backed by the process environment. A key is looked up verbatim
// first and then in its relaxed form, see EnvVarName.
type OS struct{}

func (OS) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	return os.LookupEnv(EnvVarName(key))
}

// Chain consults each Environment in order and returns the first hit.
type Chain []Environment

func (c Chain) Lookup(key string) (string, bool) {
	for _, env := range c {
		if env == nil {
			continue
		}
		if v, ok := env.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// EnvVarName converts a dotted property name into an environment variable name:
// "org.springframework.cloud.bindings.boot.enable" becomes
// "ORG_SPRINGFRAMEWORK_CLOUD_BINDINGS_BOOT_ENABLE".
func EnvVarName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
