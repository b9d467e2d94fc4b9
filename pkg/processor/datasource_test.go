package processor_test

import (
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/redhat-developer/service-binding-properties/pkg/processor"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

var connection = map[string]string{
	"host":     "h",
	"port":     "1",
	"database": "d",
	"username": "u",
	"password": "p",
	"sslmode":  "require",
}

var _ = DescribeTable("Relational processors",
	func(p processor.Processor, expected properties.Properties) {
		Expect(process(p, connection)).To(Equal(expected))
	},
	Entry("mysql", processor.MySQL(), properties.Properties{
		"spring.datasource.url":               "jdbc:mysql://h:1/d",
		"spring.datasource.username":          "u",
		"spring.datasource.password":          "p",
		"spring.datasource.driver-class-name": "org.mariadb.jdbc.Driver",
		"spring.r2dbc.url":                    "r2dbc:mysql://h:1/d",
		"spring.r2dbc.username":               "u",
		"spring.r2dbc.password":               "p",
	}),
	Entry("sqlserver", processor.SQLServer(), properties.Properties{
		"spring.datasource.url":               "jdbc:sqlserver://h:1;databaseName=d",
		"spring.datasource.username":          "u",
		"spring.datasource.password":          "p",
		"spring.datasource.driver-class-name": "com.microsoft.sqlserver.jdbc.SQLServerDriver",
		"spring.r2dbc.url":                    "r2dbc:sqlserver://h:1/d",
		"spring.r2dbc.username":               "u",
		"spring.r2dbc.password":               "p",
	}),
	Entry("oracle", processor.Oracle(), properties.Properties{
		"spring.datasource.url":               "jdbc:oracle:thin:@h:1/d",
		"spring.datasource.username":          "u",
		"spring.datasource.password":          "p",
		"spring.datasource.driver-class-name": "oracle.jdbc.OracleDriver",
		"spring.r2dbc.url":                    "r2dbc:oracle://h:1/d",
		"spring.r2dbc.username":               "u",
		"spring.r2dbc.password":               "p",
	}),
	Entry("db2", processor.DB2(), properties.Properties{
		"spring.datasource.url":               "jdbc:db2://h:1/d",
		"spring.datasource.username":          "u",
		"spring.datasource.password":          "p",
		"spring.datasource.driver-class-name": "com.ibm.db2.jcc.DB2Driver",
	}),
	Entry("hana", processor.HANA(), properties.Properties{
		"spring.datasource.url":               "jdbc:sap://h:1/?databaseName=d",
		"spring.datasource.username":          "u",
		"spring.datasource.password":          "p",
		"spring.datasource.driver-class-name": "com.sap.db.jdbc.Driver",
	}),
)

var _ = DescribeTable("Relational processors with explicit URL",
	func(p processor.Processor) {
		props := process(p, map[string]string{"host": "h", "port": "1", "database": "d", "jdbc-url": "jdbc:explicit"})
		Expect(props).To(HaveKeyWithValue("spring.datasource.url", "jdbc:explicit"))
	},
	Entry("mysql", processor.MySQL()),
	Entry("sqlserver", processor.SQLServer()),
	Entry("oracle", processor.Oracle()),
	Entry("db2", processor.DB2()),
	Entry("hana", processor.HANA()),
)
