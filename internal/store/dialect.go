package store

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql" // mysql
	_ "github.com/lib/pq"              // postgres
	_ "github.com/mattn/go-sqlite3"    // sqlite3 (cgo)
	_ "modernc.org/sqlite"             // sqlite (pure Go, default)
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverSQLite3  = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const schemaVersion = 1

// dataTables are the tables holding index data, in creation order.
var dataTables = []string{"documents", "sentences", "postings"}

// dialect holds the statements that differ between database engines.
// Queries use ? placeholders and are rebound by sqlx per driver.
type dialect struct {
	name        string
	ddl         map[string]string
	tableExists string
	// insertIgnore prefixes and suffixes an INSERT so conflicts are skipped.
	insertPrefix string
	insertSuffix string
	sqlite       bool
}

func (d dialect) insertIgnore(table, columns, values string) string {
	return fmt.Sprintf("%s INTO %s (%s) VALUES (%s)%s", d.insertPrefix, table, columns, values, d.insertSuffix)
}

var sqliteDDL = map[string]string{
	"documents": `CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY,
		path TEXT NOT NULL UNIQUE
	)`,
	"sentences": `CREATE TABLE IF NOT EXISTS sentences (
		doc_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (doc_id, seq)
	)`,
	"postings": `CREATE TABLE IF NOT EXISTS postings (
		word TEXT NOT NULL,
		doc_id INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		PRIMARY KEY (word, doc_id, seq)
	)`,
	"schema_version": `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	)`,
}

var postgresDDL = map[string]string{
	"documents": `CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY,
		path TEXT NOT NULL UNIQUE
	)`,
	"sentences": sqliteDDL["sentences"],
	"postings":  sqliteDDL["postings"],
	"schema_version": `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	)`,
}

// MySQL needs bounded key columns and a binary collation so that words
// compare case-sensitively.
var mysqlDDL = map[string]string{
	"documents": `CREATE TABLE IF NOT EXISTS documents (
		id INT NOT NULL PRIMARY KEY,
		path VARCHAR(760) NOT NULL,
		UNIQUE KEY uq_documents_path (path)
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
	"sentences": `CREATE TABLE IF NOT EXISTS sentences (
		doc_id INT NOT NULL,
		seq INT NOT NULL,
		text MEDIUMTEXT NOT NULL,
		PRIMARY KEY (doc_id, seq)
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
	"postings": `CREATE TABLE IF NOT EXISTS postings (
		word VARCHAR(191) NOT NULL,
		doc_id INT NOT NULL,
		seq INT NOT NULL,
		PRIMARY KEY (word, doc_id, seq)
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
	"schema_version": `CREATE TABLE IF NOT EXISTS schema_version (
		version INT NOT NULL PRIMARY KEY
	)`,
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite, DriverSQLite3:
		return dialect{
			name:         driver,
			ddl:          sqliteDDL,
			tableExists:  `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
			insertPrefix: "INSERT OR IGNORE",
			sqlite:       true,
		}, nil
	case DriverPostgres:
		return dialect{
			name:         driver,
			ddl:          postgresDDL,
			tableExists:  `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`,
			insertPrefix: "INSERT",
			insertSuffix: " ON CONFLICT DO NOTHING",
		}, nil
	case DriverMySQL:
		return dialect{
			name:         driver,
			ddl:          mysqlDDL,
			tableExists:  `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`,
			insertPrefix: "INSERT IGNORE",
		}, nil
	default:
		return dialect{}, fmt.Errorf("unknown SQL driver: %s (valid options: sqlite, sqlite3, postgres, mysql)", driver)
	}
}
