// Command schemaboot creates the tables of an entity catalog that do not
// exist yet. It never alters or drops existing tables.
//
// Usage:
//
//	schemaboot bootstrap --storage-kind postgres --dsn "$DSN" --catalog entities.json
//	schemaboot plan --storage-kind mssql --catalog entities.toml
//	schemaboot validate --catalog entities.json
package main

func main() {
	Execute()
}
