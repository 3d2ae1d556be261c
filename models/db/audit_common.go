package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type EntityChanges struct {
	Description string         `json:"description"`
	Data        []FieldChanges `json:"data"`
}

type FieldChanges struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

func (j EntityChanges) Value() (driver.Value, error) {
	return jsonValue(j)
}

func (j *EntityChanges) Scan(value any) error {
	return jsonScan(value, j)
}

func jsonValue(v any) (driver.Value, error) {
	valueString, err := json.Marshal(v)
	return string(valueString), err
}

// jsonScan - postgres отдает jsonb как []byte, sqlite как string
func jsonScan(value any, dst any) error {
	switch data := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	}
	return errors.Errorf("unsupported json column type %T", value)
}
