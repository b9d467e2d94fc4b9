package processor

import (
	"strings"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
)

const (
	SSLModeKey     = "sslmode"
	SSLRootCertKey = "sslrootcert"
	OptionsKey     = "options"

	// clusterOption routes connections of a CockroachDB cloud cluster.
	clusterOption = "--cluster"
)

// PostgreSQL maps "postgresql" bindings. Beside the plain datasource mapping, the JDBC URL
// carries the libpq sslmode, sslrootcert and options parameters found in the binding.
func PostgreSQL() Processor {
	return datasource{
		kind:            KindPostgreSQL,
		jdbcURL:         format("jdbc:postgresql://%s:%s/%s"),
		driverClassName: "org.postgresql.Driver",
		r2dbcURL:        format("r2dbc:postgresql://%s:%s/%s"),
		query:           postgreSQLQuery,
	}.processor()
}

// postgreSQLQuery returns the JDBC URL query built from the SSL and options entries of the
// binding, or an empty string when none of them carries a value.
func postgreSQLQuery(b binding.Binding) string {
	ssl := sslParameters(b)
	options := optionsParameter(b.GetOrDefault(OptionsKey, ""))
	switch {
	case ssl != "" && options != "":
		return ssl + "&" + options
	case ssl != "":
		return ssl
	default:
		return options
	}
}

func sslParameters(b binding.Binding) string {
	var params []string
	if mode := b.GetOrDefault(SSLModeKey, ""); mode != "" {
		params = append(params, SSLModeKey+"="+mode)
	}
	if b.GetOrDefault(SSLRootCertKey, "") != "" {
		params = append(params, SSLRootCertKey+"="+b.SecretFilePath(SSLRootCertKey))
	}
	return strings.Join(params, "&")
}

// optionsParameter turns "k1=v1&k2=v2" into "options=-c k1=v1 -c k2=v2", or returns an empty
// string when no pair survives, see PostgreSQLOptions.
func optionsParameter(options string) string {
	combined := PostgreSQLOptions(options)
	if combined == "" {
		return ""
	}
	return OptionsKey + "=" + combined
}

// PostgreSQLOptions turns the "k1=v1&k2=v2" options entry of a binding into the libpq
// command-line options "-c k1=v1 -c k2=v2". A --cluster pair is placed first, unprefixed;
// when several are given the last one is kept. Pairs without exactly one key and one value
// are dropped; trailing separators are ignored, so "k=v=" still counts as a pair.
func PostgreSQLOptions(options string) string {
	if options == "" {
		return ""
	}
	var cluster string
	var settings []string
	for _, o := range strings.Split(options, "&") {
		kv := splitNonTrailing(o, "=")
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			continue
		}
		if kv[0] == clusterOption {
			cluster = kv[0] + "=" + kv[1]
			continue
		}
		settings = append(settings, "-c "+kv[0]+"="+kv[1])
	}

	combined := cluster
	if len(settings) > 0 {
		if combined != "" {
			combined += " "
		}
		combined += strings.Join(settings, " ")
	}
	return combined
}

// splitNonTrailing splits s around sep and drops trailing empty fields.
func splitNonTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
