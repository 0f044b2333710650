package domain

import "fmt"

type StoreDriver string

const (
	StoreDriverDuckDB     StoreDriver = "duckdb"
	StoreDriverPostgres   StoreDriver = "postgres"
	StoreDriverPgx        StoreDriver = "pgx"
	StoreDriverMySQL      StoreDriver = "mysql"
	StoreDriverSnowflake  StoreDriver = "snowflake"
	StoreDriverDatabricks StoreDriver = "databricks"
)

// StoreProfile is one named connection from the profiles file.
type StoreProfile struct {
	Name        string
	Driver      StoreDriver
	DSN         string
	TablePrefix string
	Bootstrap   bool // create the report tables if missing (duckdb only)
}

func (p StoreProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Driver, p.Name)
}
