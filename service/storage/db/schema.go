package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage"
)

// createStatements returns CREATE TABLE statements, referenced tables first.
func createStatements(d dialect) ([]string, error) {
	var statements []string
	for _, kind := range model.Kinds() {
		schema, err := model.SchemaOf(kind)
		if err != nil {
			return nil, err
		}
		definitions := make([]string, 0, len(schema.Columns)+2)
		var keys []string
		for i, column := range schema.Columns {
			definition := column.Name + " " + d.columnType(column) + " NOT NULL"
			if i == 0 {
				definition += " PRIMARY KEY"
			}
			definitions = append(definitions, definition)
			if column.References == "" {
				continue
			}
			keys = append(keys, foreignKey(d, column.Name, column.References))
		}
		definitions = append(definitions, keys...)
		statements = append(statements, createTable(d, schema.Table, definitions))
	}
	for _, kind := range model.Kinds() {
		schema, _ := model.SchemaOf(kind)
		association := schema.Association
		if association == nil {
			continue
		}
		column := model.Column{Type: model.String, Size: 60}
		definitions := []string{
			association.OwnerColumn + " " + d.columnType(column) + " NOT NULL",
			association.TargetColumn + " " + d.columnType(column) + " NOT NULL",
			fmt.Sprintf("PRIMARY KEY (%s, %s)", association.OwnerColumn, association.TargetColumn),
			foreignKey(d, association.OwnerColumn, kind),
			foreignKey(d, association.TargetColumn, association.Target),
		}
		statements = append(statements, createTable(d, association.Table, definitions))
	}
	return statements, nil
}

// tables returns every table, referencing tables first.
func tables() []string {
	var result []string
	kinds := model.Kinds()
	for i := len(kinds) - 1; i >= 0; i-- {
		schema, _ := model.SchemaOf(kinds[i])
		if schema.Association != nil {
			result = append([]string{schema.Association.Table}, result...)
		}
		result = append(result, schema.Table)
	}
	return result
}

func tableOf(kind model.Kind) (*model.Schema, error) {
	if !kind.IsConcrete() {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownKind, kind)
	}
	return model.SchemaOf(kind)
}

func createTable(d dialect, table string, definitions []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)%s", table, strings.Join(definitions, ",\n\t"), d.tableOptions())
}

func foreignKey(d dialect, column string, kind model.Kind) string {
	schema, _ := model.SchemaOf(kind)
	return fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE CASCADE%s", column, schema.Table, d.foreignKeyOptions())
}

func createSchema(ctx context.Context, db *sql.DB, d dialect) error {
	statements, err := createStatements(d)
	if err != nil {
		return err
	}
	for _, statement := range statements {
		if _, err = db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func dropSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range tables() {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
