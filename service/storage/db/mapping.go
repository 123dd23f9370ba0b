package db

import (
	"fmt"
	"strconv"
	"time"

	"github.com/viant/objstore/model"
)

// bindValues returns entity values in column order, timestamps as unix
// microseconds.
func bindValues(schema *model.Schema, entity model.Entity) []interface{} {
	values := entity.Values()
	for i, column := range schema.Columns {
		if column.Type != model.Timestamp {
			continue
		}
		if ts, ok := values[i].(time.Time); ok {
			values[i] = ts.UTC().UnixMicro()
		}
	}
	return values
}

// scanTargets returns entity scan destinations in column order.
func scanTargets(schema *model.Schema, entity model.Entity) []interface{} {
	targets := entity.Targets()
	for i, column := range schema.Columns {
		if column.Type != model.Timestamp {
			continue
		}
		if ts, ok := targets[i].(*time.Time); ok {
			targets[i] = &microTime{target: ts}
		}
	}
	return targets
}

// microTime scans a unix microsecond column into a time.Time.
type microTime struct {
	target *time.Time
}

func (m *microTime) Scan(src interface{}) error {
	switch actual := src.(type) {
	case nil:
		*m.target = time.Time{}
	case int64:
		*m.target = time.UnixMicro(actual).UTC()
	case []byte:
		return m.parse(string(actual))
	case string:
		return m.parse(actual)
	case time.Time:
		*m.target = actual.UTC()
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
	return nil
}

func (m *microTime) parse(text string) error {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", text, err)
	}
	*m.target = time.UnixMicro(value).UTC()
	return nil
}
