package db

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/viant/objstore/model"
	_ "modernc.org/sqlite"
)

const (
	// MySQL selects the go-sql-driver/mysql dialect.
	MySQL = "mysql"
	// SQLite selects the modernc.org/sqlite dialect.
	SQLite = "sqlite"
)

// dialect isolates the SQL differences between supported databases.
type dialect interface {
	driverName() string
	dsn(cfg *Config) (string, error)
	columnType(column model.Column) string
	foreignKeyOptions() string
	tableOptions() string
	upsert(table string, columns []string) string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case MySQL, "":
		return mysqlDialect{}, nil
	case SQLite:
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported db driver: %q", driver)
}

type mysqlDialect struct{}

func (mysqlDialect) driverName() string { return MySQL }

func (mysqlDialect) dsn(cfg *Config) (string, error) {
	conf := mysql.NewConfig()
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.Net = "tcp"
	conf.Addr = cfg.Host
	if conf.Addr == "" {
		conf.Addr = "localhost"
	}
	if _, _, err := net.SplitHostPort(conf.Addr); err != nil {
		conf.Addr = net.JoinHostPort(conf.Addr, "3306")
	}
	conf.DBName = cfg.Database
	conf.ParseTime = true
	return conf.FormatDSN(), nil
}

func (mysqlDialect) columnType(column model.Column) string {
	switch column.Type {
	case model.String:
		return fmt.Sprintf("VARCHAR(%d)", column.Size)
	case model.Text:
		return "TEXT"
	case model.Float:
		return "DOUBLE"
	default:
		return "BIGINT"
	}
}

func (mysqlDialect) foreignKeyOptions() string { return "" }

func (mysqlDialect) tableOptions() string { return " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4" }

func (mysqlDialect) upsert(table string, columns []string) string {
	updates := make([]string, 0, len(columns))
	for _, column := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", column, column))
	}
	return insert(table, columns) + " ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
}

type sqliteDialect struct{}

func (sqliteDialect) driverName() string { return SQLite }

func (sqliteDialect) dsn(cfg *Config) (string, error) {
	if strings.TrimSpace(cfg.SQLitePath) == "" {
		return "", fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(cfg.SQLitePath)
	return cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
}

func (sqliteDialect) columnType(column model.Column) string {
	switch column.Type {
	case model.String, model.Text:
		return "TEXT"
	case model.Float:
		return "REAL"
	default:
		return "INTEGER"
	}
}

// foreign keys are checked at commit so that violations surface on Save
func (sqliteDialect) foreignKeyOptions() string { return " DEFERRABLE INITIALLY DEFERRED" }

func (sqliteDialect) tableOptions() string { return "" }

func (sqliteDialect) upsert(table string, columns []string) string {
	updates := make([]string, 0, len(columns))
	for _, column := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
	}
	return insert(table, columns) + " ON CONFLICT(" + columns[0] + ") DO UPDATE SET " + strings.Join(updates, ", ")
}

func insert(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)
}
