package binding_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/environment"
)

func writeEntries(dir string, entries map[string]string) {
	Expect(os.MkdirAll(dir, 0755)).To(Succeed())
	for k, v := range entries {
		Expect(ioutil.WriteFile(filepath.Join(dir, k), []byte(v), 0644)).To(Succeed())
	}
}

var _ = Describe("Discovery from path", func() {

	var root string

	BeforeEach(func() {
		var err error
		root, err = ioutil.TempDir("", "bindings")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(root)).To(Succeed())
	})

	It("should read kubernetes layout", func() {
		writeEntries(filepath.Join(root, "pg"), map[string]string{
			"type":     "postgresql\n",
			"provider": "crunchy",
			"host":     "db.svc",
			"password": " secret \n",
		})

		bindings, err := binding.FromPath(root)
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(HaveLen(1))

		b := bindings[0]
		Expect(b.Name()).To(Equal("pg"))
		Expect(b.Path()).To(Equal(filepath.Join(root, "pg")))
		Expect(b.Kind()).To(Equal("postgresql"))
		Expect(b.Metadata()).To(Equal(map[string]string{"type": "postgresql", "provider": "crunchy"}))
		Expect(b.Secret()).To(Equal(map[string]string{"host": "db.svc", "password": "secret"}))
	})

	It("should read legacy CNB layout", func() {
		writeEntries(filepath.Join(root, "cass", "metadata"), map[string]string{"kind": "cassandra"})
		writeEntries(filepath.Join(root, "cass", "secret"), map[string]string{"node_ips": "ip1,ip2"})

		bindings, err := binding.FromPath(root)
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(HaveLen(1))
		Expect(bindings[0].Kind()).To(Equal("cassandra"))
		Expect(bindings[0].Secret()).To(Equal(map[string]string{"node_ips": "ip1,ip2"}))
	})

	It("should follow kubernetes atomic writer links and skip hidden entries", func() {
		dir := filepath.Join(root, "redis")
		writeEntries(filepath.Join(dir, "..2021_01_01"), map[string]string{"type": "redis", "host": "cache"})
		Expect(os.Symlink("..2021_01_01", filepath.Join(dir, "..data"))).To(Succeed())
		Expect(os.Symlink(filepath.Join("..data", "type"), filepath.Join(dir, "type"))).To(Succeed())
		Expect(os.Symlink(filepath.Join("..data", "host"), filepath.Join(dir, "host"))).To(Succeed())

		bindings, err := binding.FromPath(root)
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(HaveLen(1))
		Expect(bindings[0].Kind()).To(Equal("redis"))
		Expect(bindings[0].Secret()).To(Equal(map[string]string{"host": "cache"}))
	})

	It("should sort bindings by name and ignore plain files in root", func() {
		writeEntries(filepath.Join(root, "b"), map[string]string{"type": "kafka"})
		writeEntries(filepath.Join(root, "a"), map[string]string{"type": "mysql"})
		writeEntries(root, map[string]string{"README": "ignored"})

		bindings, err := binding.FromPath(root)
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(HaveLen(2))
		Expect(bindings[0].Name()).To(Equal("a"))
		Expect(bindings[1].Name()).To(Equal("b"))
	})

	It("should return no bindings when root does not exist", func() {
		bindings, err := binding.FromPath(filepath.Join(root, "missing"))
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(BeEmpty())
	})

	It("should prefer SERVICE_BINDING_ROOT over CNB_BINDINGS", func() {
		writeEntries(filepath.Join(root, "k8s", "pg"), map[string]string{"type": "postgresql"})
		writeEntries(filepath.Join(root, "cnb", "mongo", "metadata"), map[string]string{"kind": "mongodb"})
		writeEntries(filepath.Join(root, "cnb", "mongo", "secret"), map[string]string{})

		env := environment.Map{
			binding.ServiceBindingRootEnvVar: filepath.Join(root, "k8s"),
			binding.CNBBindingsEnvVar:        filepath.Join(root, "cnb"),
		}
		bindings, err := binding.FromEnvironment(env)
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(HaveLen(1))
		Expect(bindings[0].Kind()).To(Equal("postgresql"))

		delete(env, binding.ServiceBindingRootEnvVar)
		bindings, err = binding.FromEnvironment(env)
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(HaveLen(1))
		Expect(bindings[0].Kind()).To(Equal("mongodb"))
	})

	It("should return no bindings when no root is configured", func() {
		bindings, err := binding.FromEnvironment(environment.Map{})
		Expect(err).NotTo(HaveOccurred())
		Expect(bindings).To(BeEmpty())
	})
})
