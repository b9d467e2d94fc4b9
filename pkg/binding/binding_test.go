package binding_test

import (
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
)

var _ = Describe("Binding", func() {

	It("should resolve kind from legacy metadata first", func() {
		b := binding.New("db", "/bindings/db", map[string]string{"kind": "postgresql", "type": "mysql"}, nil)
		Expect(b.Kind()).To(Equal("postgresql"))
	})

	It("should resolve kind from type entry", func() {
		b := binding.New("db", "/bindings/db", map[string]string{"type": "mysql", "provider": "bitnami"}, nil)
		Expect(b.Kind()).To(Equal("mysql"))
		Expect(b.Provider()).To(Equal("bitnami"))
	})

	It("should not be affected by changes to the maps it was built from", func() {
		secret := map[string]string{"username": "foo"}
		b := binding.New("db", "/bindings/db", nil, secret)
		secret["username"] = "bar"
		b.Secret()["username"] = "baz"

		v, ok := b.Get("username")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("foo"))
	})

	It("should return default for absent secret entries", func() {
		b := binding.New("db", "/bindings/db", nil, map[string]string{"sslmode": ""})
		Expect(b.GetOrDefault("sslmode", "x")).To(Equal(""))
		Expect(b.GetOrDefault("sslrootcert", "x")).To(Equal("x"))
	})

	It("should join secret file path with platform separator", func() {
		b := binding.New("pg", "/bindings/pg", nil, map[string]string{"sslrootcert": "root.crt"})
		Expect(b.SecretFilePath("sslrootcert")).To(Equal("/bindings/pg" + string(os.PathSeparator) + "root.crt"))
	})
})

var _ = Describe("Bindings", func() {

	var bindings binding.Bindings

	BeforeEach(func() {
		bindings = binding.Bindings{
			binding.New("pg1", "/b/pg1", map[string]string{"type": "postgresql"}, nil),
			binding.New("c1", "/b/c1", map[string]string{"kind": "cassandra"}, nil),
			binding.New("pg2", "/b/pg2", map[string]string{"type": "PostgreSQL"}, nil),
			binding.New("none", "/b/none", nil, nil),
		}
	})

	It("should filter by kind preserving order", func() {
		result := bindings.Filter("postgresql")
		Expect(result).To(HaveLen(2))
		Expect(result[0].Name()).To(Equal("pg1"))
		Expect(result[1].Name()).To(Equal("pg2"))
	})

	It("should be restartable", func() {
		Expect(bindings.Filter("cassandra")).To(Equal(bindings.Filter("cassandra")))
	})

	It("should return empty result for unknown kind", func() {
		Expect(bindings.Filter("redis")).To(BeEmpty())
	})

	It("should list distinct kinds", func() {
		Expect(bindings.Kinds()).To(Equal([]string{"postgresql", "cassandra"}))
	})
})
