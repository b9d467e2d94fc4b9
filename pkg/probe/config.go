package probe

import (
	"crypto/tls"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"github.com/gocql/gocql"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
)

// IncompleteBindingError is returned when a binding lacks the entries needed to connect.
type IncompleteBindingError struct {
	Name    string
	Missing []string
}

func (e *IncompleteBindingError) Error() string {
	return "binding " + strconv.Quote(e.Name) + " is missing " + strings.Join(e.Missing, ", ")
}

func requireEntries(b binding.Binding, keys ...string) ([]string, error) {
	var missing []string
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		v := b.GetOrDefault(k, "")
		if v == "" {
			missing = append(missing, k)
		}
		values = append(values, v)
	}
	if len(missing) > 0 {
		return nil, &IncompleteBindingError{Name: b.Name(), Missing: missing}
	}
	return values, nil
}

// PostgreSQLDSN returns the lib/pq connection string for a postgresql binding.
func PostgreSQLDSN(b binding.Binding) (string, error) {
	v, err := requireEntries(b, "host", "port", "database")
	if err != nil {
		return "", err
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(v[0], v[1]),
		Path:   "/" + v[2],
	}
	if username := b.GetOrDefault("username", ""); username != "" {
		u.User = url.UserPassword(username, b.GetOrDefault("password", ""))
	}
	q := url.Values{}
	if mode := b.GetOrDefault("sslmode", ""); mode != "" {
		q.Set("sslmode", mode)
	}
	if b.GetOrDefault("sslrootcert", "") != "" {
		q.Set("sslrootcert", b.SecretFilePath("sslrootcert"))
	}
	if options := processor.PostgreSQLOptions(b.GetOrDefault(processor.OptionsKey, "")); options != "" {
		q.Set(processor.OptionsKey, options)
	}
	u.RawQuery = q.Encode()

	dsn, err := pq.ParseURL(u.String())
	if err != nil {
		return "", errors.Wrapf(err, "invalid postgresql binding %q", b.Name())
	}
	return dsn, nil
}

// MySQLDSN returns the go-sql-driver/mysql DSN for a mysql binding.
func MySQLDSN(b binding.Binding, timeout time.Duration) (string, error) {
	v, err := requireEntries(b, "host", "port", "database")
	if err != nil {
		return "", err
	}
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(v[0], v[1])
	cfg.DBName = v[2]
	cfg.User = b.GetOrDefault("username", "")
	cfg.Passwd = b.GetOrDefault("password", "")
	cfg.Timeout = timeout
	return cfg.FormatDSN(), nil
}

// RedisOptions returns the go-redis client options for a redis binding. An url entry takes
// precedence over host and port.
func RedisOptions(b binding.Binding) (*redis.Options, error) {
	if raw := b.GetOrDefault("url", ""); raw != "" {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid redis url in binding %q", b.Name())
		}
		return opts, nil
	}
	v, err := requireEntries(b, "host", "port")
	if err != nil {
		return nil, err
	}
	opts := &redis.Options{
		Addr:     net.JoinHostPort(v[0], v[1]),
		Username: b.GetOrDefault("username", ""),
		Password: b.GetOrDefault("password", ""),
	}
	if db := b.GetOrDefault("database", ""); db != "" {
		if opts.DB, err = strconv.Atoi(db); err != nil {
			return nil, errors.Wrapf(err, "invalid redis database in binding %q", b.Name())
		}
	}
	if ssl, _ := strconv.ParseBool(b.GetOrDefault("ssl", "")); ssl {
		opts.TLSConfig = &tls.Config{ServerName: v[0], MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// CassandraCluster returns the gocql cluster configuration for a cassandra binding.
func CassandraCluster(b binding.Binding, timeout time.Duration) (*gocql.ClusterConfig, error) {
	v, err := requireEntries(b, "node_ips")
	if err != nil {
		return nil, err
	}
	var hosts []string
	for _, h := range strings.Split(v[0], ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	cluster := gocql.NewCluster(hosts...)
	if port := b.GetOrDefault("port", ""); port != "" {
		if cluster.Port, err = strconv.Atoi(port); err != nil {
			return nil, errors.Wrapf(err, "invalid cassandra port in binding %q", b.Name())
		}
	}
	cluster.Keyspace = b.GetOrDefault("keyspace-name", "")
	if timeout > 0 {
		cluster.Timeout = timeout
		cluster.ConnectTimeout = timeout
	}
	if username := b.GetOrDefault("username", ""); username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: username,
			Password: b.GetOrDefault("password", ""),
		}
	}
	return cluster, nil
}

// MongoDBOptions returns the mongo-driver client options for a mongodb binding. An uri entry
// takes precedence over host and port.
func MongoDBOptions(b binding.Binding) (*options.ClientOptions, error) {
	uri := b.GetOrDefault("uri", "")
	if uri == "" {
		v, err := requireEntries(b, "host", "port")
		if err != nil {
			return nil, err
		}
		uri = "mongodb://" + net.JoinHostPort(v[0], v[1])
	}
	opts := options.Client().ApplyURI(uri)
	if username := b.GetOrDefault("username", ""); username != "" {
		opts.SetAuth(options.Credential{
			AuthSource: b.GetOrDefault("authentication-database", ""),
			Username:   username,
			Password:   b.GetOrDefault("password", ""),
		})
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid mongodb binding %q", b.Name())
	}
	return opts, nil
}
