package processor

import (
	"fmt"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

const (
	DataSourceURL             = "spring.datasource.url"
	DataSourceUsername        = "spring.datasource.username"
	DataSourcePassword        = "spring.datasource.password"
	DataSourceDriverClassName = "spring.datasource.driver-class-name"

	R2DBCURL      = "spring.r2dbc.url"
	R2DBCUsername = "spring.r2dbc.username"
	R2DBCPassword = "spring.r2dbc.password"

	// JDBCURLKey overrides the derived JDBC URL when present in the binding secret.
	JDBCURLKey = "jdbc-url"
	// R2DBCURLKey overrides the derived R2DBC URL when present in the binding secret.
	R2DBCURLKey = "r2dbc-url"
)

// urlFunc builds a connection URL from the host, port and database entries.
type urlFunc func(host, port, database string) string

func format(pattern string) urlFunc {
	return func(host, port, database string) string {
		return fmt.Sprintf(pattern, host, port, database)
	}
}

// datasource describes a relational kind mapped onto spring.datasource.* and, when an R2DBC
// driver exists, spring.r2dbc.*.
type datasource struct {
	kind            string
	jdbcURL         urlFunc
	driverClassName string
	// r2dbcURL is nil for kinds without R2DBC support.
	r2dbcURL urlFunc
	// query, when set, returns the query string appended to the derived JDBC URL.
	query func(b binding.Binding) string
}

func (d datasource) processor() Processor {
	return New(d.kind, d.apply)
}

// apply maps one binding. The query is only appended to a URL derived from host, port and
// database; without them no URL is derived and the query is dropped.
func (d datasource) apply(b binding.Binding, props properties.Properties) error {
	mapValue(b, props, "password", DataSourcePassword)
	if v, ok := all(b, "host", "port", "database"); ok {
		url := d.jdbcURL(v[0], v[1], v[2])
		if d.query != nil {
			if q := d.query(b); q != "" {
				url = url + "?" + q
			}
		}
		props.Put(DataSourceURL, url)
	}
	mapValue(b, props, "username", DataSourceUsername)
	// an explicit JDBC URL takes precedence over the derived one
	mapValue(b, props, JDBCURLKey, DataSourceURL)
	props.Put(DataSourceDriverClassName, d.driverClassName)

	if d.r2dbcURL == nil {
		return nil
	}
	mapValue(b, props, "password", R2DBCPassword)
	if v, ok := all(b, "host", "port", "database"); ok {
		props.Put(R2DBCURL, d.r2dbcURL(v[0], v[1], v[2]))
	}
	mapValue(b, props, "username", R2DBCUsername)
	mapValue(b, props, R2DBCURLKey, R2DBCURL)
	return nil
}

func mapValue(b binding.Binding, props properties.Properties, from, to string) {
	if v, ok := b.Get(from); ok {
		props.Put(to, v)
	}
}

// MySQL maps "mysql" bindings.
func MySQL() Processor {
	return datasource{
		kind:            KindMySQL,
		jdbcURL:         format("jdbc:mysql://%s:%s/%s"),
		driverClassName: "org.mariadb.jdbc.Driver",
		r2dbcURL:        format("r2dbc:mysql://%s:%s/%s"),
	}.processor()
}

// SQLServer maps "sqlserver" bindings.
func SQLServer() Processor {
	return datasource{
		kind:            KindSQLServer,
		jdbcURL:         format("jdbc:sqlserver://%s:%s;databaseName=%s"),
		driverClassName: "com.microsoft.sqlserver.jdbc.SQLServerDriver",
		r2dbcURL:        format("r2dbc:sqlserver://%s:%s/%s"),
	}.processor()
}

// Oracle maps "oracle" bindings, using the thin driver service name syntax.
func Oracle() Processor {
	return datasource{
		kind:            KindOracle,
		jdbcURL:         format("jdbc:oracle:thin:@%s:%s/%s"),
		driverClassName: "oracle.jdbc.OracleDriver",
		r2dbcURL:        format("r2dbc:oracle://%s:%s/%s"),
	}.processor()
}

// DB2 maps "db2" bindings.
func DB2() Processor {
	return datasource{
		kind:            KindDB2,
		jdbcURL:         format("jdbc:db2://%s:%s/%s"),
		driverClassName: "com.ibm.db2.jcc.DB2Driver",
	}.processor()
}

// HANA maps "hana" bindings.
func HANA() Processor {
	return datasource{
		kind:            KindHANA,
		jdbcURL:         format("jdbc:sap://%s:%s/?databaseName=%s"),
		driverClassName: "com.sap.db.jdbc.Driver",
	}.processor()
}
