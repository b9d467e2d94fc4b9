package probe

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
)

// DefaultTimeout bounds a single probe when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// ErrUnsupportedKind is returned for bindings whose kind cannot be probed.
var ErrUnsupportedKind = errors.New("binding kind cannot be probed")

var log = logging.Logger("probe")

// Prober checks that the service described by a binding accepts connections.
type Prober struct {
	// Timeout bounds each probe, DefaultTimeout when zero.
	Timeout time.Duration

	openDB func(driver, dsn string) (*sql.DB, error)
}

func New(timeout time.Duration) *Prober {
	return &Prober{Timeout: timeout, openDB: sql.Open}
}

// Kinds lists the binding kinds Probe supports.
func Kinds() []string {
	return []string{
		processor.KindCassandra,
		processor.KindMongoDB,
		processor.KindMySQL,
		processor.KindPostgreSQL,
		processor.KindRedis,
	}
}

// Probe connects to the service of b and pings it.
func (p *Prober) Probe(ctx context.Context, b binding.Binding) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := log.WithValues("name", b.Name(), "kind", b.Kind())
	logger.Debug("Probing binding")

	var err error
	switch strings.ToLower(b.Kind()) {
	case processor.KindPostgreSQL:
		err = p.probePostgreSQL(ctx, b)
	case processor.KindMySQL:
		err = p.probeMySQL(ctx, b, timeout)
	case processor.KindRedis:
		err = probeRedis(ctx, b)
	case processor.KindCassandra:
		err = probeCassandra(b, timeout)
	case processor.KindMongoDB:
		err = probeMongoDB(ctx, b)
	default:
		return errors.Wrapf(ErrUnsupportedKind, "binding %q of kind %q", b.Name(), b.Kind())
	}
	if err != nil {
		logger.Debug("Probe failed", "error", err.Error())
		return err
	}
	logger.Info("Binding reachable")
	return nil
}

func (p *Prober) probePostgreSQL(ctx context.Context, b binding.Binding) error {
	dsn, err := PostgreSQLDSN(b)
	if err != nil {
		return err
	}
	return p.pingSQL(ctx, "postgres", dsn, b)
}

func (p *Prober) probeMySQL(ctx context.Context, b binding.Binding, timeout time.Duration) error {
	dsn, err := MySQLDSN(b, timeout)
	if err != nil {
		return err
	}
	return p.pingSQL(ctx, "mysql", dsn, b)
}

func (p *Prober) pingSQL(ctx context.Context, driver, dsn string, b binding.Binding) error {
	open := p.openDB
	if open == nil {
		open = sql.Open
	}
	db, err := open(driver, dsn)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s connection for binding %q", driver, b.Name())
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrapf(err, "unable to reach %s service of binding %q", driver, b.Name())
	}
	return nil
}

func probeRedis(ctx context.Context, b binding.Binding) error {
	opts, err := RedisOptions(b)
	if err != nil {
		return err
	}
	client := redis.NewClient(opts)
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return errors.Wrapf(err, "unable to reach redis service of binding %q", b.Name())
	}
	return nil
}

func probeCassandra(b binding.Binding, timeout time.Duration) error {
	cluster, err := CassandraCluster(b, timeout)
	if err != nil {
		return err
	}
	session, err := cluster.CreateSession()
	if err != nil {
		return errors.Wrapf(err, "unable to reach cassandra service of binding %q", b.Name())
	}
	session.Close()
	return nil
}

func probeMongoDB(ctx context.Context, b binding.Binding) error {
	opts, err := MongoDBOptions(b)
	if err != nil {
		return err
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return errors.Wrapf(err, "unable to connect to mongodb service of binding %q", b.Name())
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrapf(err, "unable to reach mongodb service of binding %q", b.Name())
	}
	return nil
}
