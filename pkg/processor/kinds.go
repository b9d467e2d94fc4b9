package processor

const (
	KindArtemis       = "artemis"
	KindCassandra     = "cassandra"
	KindCouchbase     = "couchbase"
	KindDB2           = "db2"
	KindElasticsearch = "elasticsearch"
	KindHANA          = "hana"
	KindKafka         = "kafka"
	KindLDAP          = "ldap"
	KindMongoDB       = "mongodb"
	KindMySQL         = "mysql"
	KindNeo4j         = "neo4j"
	KindOracle        = "oracle"
	KindPostgreSQL    = "postgresql"
	KindRabbitMQ      = "rabbitmq"
	KindRedis         = "redis"
	KindSQLServer     = "sqlserver"
	KindWavefront     = "wavefront"
)

// Cassandra maps "cassandra" bindings onto spring.data.cassandra.*.
func Cassandra() Processor {
	return fields(KindCassandra,
		prefixed("spring.data.cassandra.", "cluster-name", "compression", "keyspace-name", "password", "port", "ssl", "username").
			with("node_ips", "spring.data.cassandra.contact-points"))
}

func Couchbase() Processor {
	return fields(KindCouchbase, prefixed("spring.couchbase.",
		"bootstrap-hosts",
		"bucket.name",
		"bucket.password",
		"env.bootstrap.http-direct-port",
		"env.bootstrap.http-ssl-port",
		"password",
		"username",
	))
}

// Elasticsearch maps "elasticsearch" bindings onto both the blocking REST client and the
// reactive client properties.
func Elasticsearch() Processor {
	const (
		rest     = "spring.elasticsearch.rest."
		reactive = "spring.data.elasticsearch.client.reactive."
	)
	return fields(KindElasticsearch, mappings{
		{from: "endpoints", to: reactive + "endpoints"},
		{from: "endpoints", to: rest + "uris"},
		{from: "password", to: reactive + "password"},
		{from: "password", to: rest + "password"},
		{from: "use-ssl", to: reactive + "use-ssl"},
		{from: "username", to: reactive + "username"},
		{from: "username", to: rest + "username"},
	})
}

func Kafka() Processor {
	return fields(KindKafka, prefixed("spring.kafka.",
		"bootstrap-servers",
		"consumer.bootstrap-servers",
		"producer.bootstrap-servers",
		"streams.bootstrap-servers",
	))
}

func LDAP() Processor {
	return fields(KindLDAP, prefixed("spring.ldap.", "base", "password", "urls", "username"))
}

func MongoDB() Processor {
	return fields(KindMongoDB, prefixed("spring.data.mongodb.",
		"authentication-database",
		"database",
		"grid-fs-database",
		"host",
		"password",
		"port",
		"uri",
		"username",
	))
}

func Neo4j() Processor {
	return fields(KindNeo4j, mappings{
		{from: "password", to: "spring.neo4j.authentication.password"},
		{from: "uri", to: "spring.neo4j.uri"},
		{from: "username", to: "spring.neo4j.authentication.username"},
	})
}

func RabbitMQ() Processor {
	return fields(KindRabbitMQ, prefixed("spring.rabbitmq.", "addresses", "host", "password", "port", "username", "virtual-host"))
}

func Redis() Processor {
	return fields(KindRedis, prefixed("spring.redis.",
		"client-name",
		"cluster.max-redirects",
		"cluster.nodes",
		"database",
		"host",
		"password",
		"port",
		"sentinel.master",
		"sentinel.nodes",
		"ssl",
		"url",
	))
}

func Artemis() Processor {
	return fields(KindArtemis, prefixed("spring.artemis.", "broker-url", "host", "mode", "password", "port", "user"))
}

func Wavefront() Processor {
	return fields(KindWavefront, prefixed("management.metrics.export.wavefront.", "api-token", "uri"))
}
