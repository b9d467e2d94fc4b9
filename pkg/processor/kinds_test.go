package processor_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/environment"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

func process(p processor.Processor, secret map[string]string) properties.Properties {
	bindings := binding.Bindings{
		binding.New("test-name", "test-path", map[string]string{"kind": p.Kind()}, secret),
	}
	props := properties.New()
	Expect(p.Process(environment.Map{}, bindings, props)).To(Succeed())
	return props
}

var _ = Describe("Cassandra Processor", func() {

	It("should contribute properties", func() {
		props := process(processor.Cassandra(), map[string]string{
			"node_ips": "ip1,ip2",
			"password": "p",
			"port":     "9042",
			"username": "u",
		})

		Expect(props).To(Equal(properties.Properties{
			"spring.data.cassandra.contact-points": "ip1,ip2",
			"spring.data.cassandra.password":       "p",
			"spring.data.cassandra.port":           "9042",
			"spring.data.cassandra.username":       "u",
		}))
	})

	It("should ignore bindings of other kinds", func() {
		bindings := binding.Bindings{
			binding.New("db", "p", map[string]string{"type": "mongodb"}, map[string]string{"port": "1"}),
		}
		props := properties.New()
		Expect(processor.Cassandra().Process(environment.Map{}, bindings, props)).To(Succeed())
		Expect(props).To(BeEmpty())
	})

	It("should not contribute when disabled", func() {
		bindings := binding.Bindings{
			binding.New("db", "p", map[string]string{"kind": "cassandra"}, map[string]string{"port": "1"}),
		}
		props := properties.New()
		env := environment.Map{"org.springframework.cloud.bindings.boot.cassandra.enable": "false"}
		Expect(processor.Cassandra().Process(env, bindings, props)).To(Succeed())
		Expect(props).To(BeEmpty())
	})
})

var _ = DescribeTable("Field mapping processors",
	func(p processor.Processor, secret map[string]string, expected properties.Properties) {
		Expect(process(p, secret)).To(Equal(expected))
	},
	Entry("couchbase", processor.Couchbase(),
		map[string]string{
			"bootstrap-hosts":                "h1,h2",
			"bucket.name":                    "b",
			"bucket.password":                "bp",
			"env.bootstrap.http-direct-port": "8091",
			"env.bootstrap.http-ssl-port":    "18091",
			"password":                       "p",
			"username":                       "u",
		},
		properties.Properties{
			"spring.couchbase.bootstrap-hosts":                "h1,h2",
			"spring.couchbase.bucket.name":                    "b",
			"spring.couchbase.bucket.password":                "bp",
			"spring.couchbase.env.bootstrap.http-direct-port": "8091",
			"spring.couchbase.env.bootstrap.http-ssl-port":    "18091",
			"spring.couchbase.password":                       "p",
			"spring.couchbase.username":                       "u",
		}),
	Entry("elasticsearch", processor.Elasticsearch(),
		map[string]string{"endpoints": "e", "password": "p", "use-ssl": "true", "username": "u"},
		properties.Properties{
			"spring.elasticsearch.rest.uris":                      "e",
			"spring.elasticsearch.rest.password":                  "p",
			"spring.elasticsearch.rest.username":                  "u",
			"spring.data.elasticsearch.client.reactive.endpoints": "e",
			"spring.data.elasticsearch.client.reactive.password":  "p",
			"spring.data.elasticsearch.client.reactive.use-ssl":   "true",
			"spring.data.elasticsearch.client.reactive.username":  "u",
		}),
	Entry("kafka", processor.Kafka(),
		map[string]string{"bootstrap-servers": "k:9092", "consumer.bootstrap-servers": "c:9092"},
		properties.Properties{
			"spring.kafka.bootstrap-servers":          "k:9092",
			"spring.kafka.consumer.bootstrap-servers": "c:9092",
		}),
	Entry("ldap", processor.LDAP(),
		map[string]string{"base": "dc=example", "password": "p", "urls": "ldap://l", "username": "u"},
		properties.Properties{
			"spring.ldap.base":     "dc=example",
			"spring.ldap.password": "p",
			"spring.ldap.urls":     "ldap://l",
			"spring.ldap.username": "u",
		}),
	Entry("mongodb", processor.MongoDB(),
		map[string]string{"authentication-database": "admin", "database": "d", "host": "h", "port": "27017", "uri": "mongodb://h"},
		properties.Properties{
			"spring.data.mongodb.authentication-database": "admin",
			"spring.data.mongodb.database":                "d",
			"spring.data.mongodb.host":                    "h",
			"spring.data.mongodb.port":                    "27017",
			"spring.data.mongodb.uri":                     "mongodb://h",
		}),
	Entry("neo4j", processor.Neo4j(),
		map[string]string{"password": "p", "uri": "neo4j://n", "username": "u"},
		properties.Properties{
			"spring.neo4j.authentication.password": "p",
			"spring.neo4j.authentication.username": "u",
			"spring.neo4j.uri":                     "neo4j://n",
		}),
	Entry("rabbitmq", processor.RabbitMQ(),
		map[string]string{"addresses": "a", "host": "h", "password": "p", "port": "5672", "username": "u", "virtual-host": "v"},
		properties.Properties{
			"spring.rabbitmq.addresses":    "a",
			"spring.rabbitmq.host":         "h",
			"spring.rabbitmq.password":     "p",
			"spring.rabbitmq.port":         "5672",
			"spring.rabbitmq.username":     "u",
			"spring.rabbitmq.virtual-host": "v",
		}),
	Entry("redis", processor.Redis(),
		map[string]string{"host": "h", "port": "6379", "sentinel.master": "m", "ssl": "true", "unknown": "x"},
		properties.Properties{
			"spring.redis.host":            "h",
			"spring.redis.port":            "6379",
			"spring.redis.sentinel.master": "m",
			"spring.redis.ssl":             "true",
		}),
	Entry("artemis", processor.Artemis(),
		map[string]string{"mode": "native", "host": "h", "port": "61616", "user": "u", "password": "p"},
		properties.Properties{
			"spring.artemis.mode":     "native",
			"spring.artemis.host":     "h",
			"spring.artemis.port":     "61616",
			"spring.artemis.user":     "u",
			"spring.artemis.password": "p",
		}),
	Entry("wavefront", processor.Wavefront(),
		map[string]string{"api-token": "t", "uri": "https://w"},
		properties.Properties{
			"management.metrics.export.wavefront.api-token": "t",
			"management.metrics.export.wavefront.uri":       "https://w",
		}),
)

var _ = DescribeTable("Redis enable switch",
	func(value string, enabled bool) {
		bindings := binding.Bindings{
			binding.New("cache", "p", map[string]string{"type": "redis"}, map[string]string{"host": "h"}),
		}
		props := properties.New()
		env := environment.Map{"org.springframework.cloud.bindings.boot.redis.enable": value}
		Expect(processor.Redis().Process(env, bindings, props)).To(Succeed())
		if enabled {
			Expect(props).To(Equal(properties.Properties{"spring.redis.host": "h"}))
		} else {
			Expect(props).To(BeEmpty())
		}
	},
	Entry("false", "false", false),
	Entry("off", "off", false),
	Entry("OFF", "OFF", false),
	Entry("no", "no", false),
	Entry("0", "0", false),
	Entry("on", "on", true),
	Entry("yes", "yes", true),
	Entry("TRUE", "TRUE", true),
	Entry("unrecognized value keeps the default", "disabled", true),
)
