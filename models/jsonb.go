package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Custom JSONB type for snapshot and settings columns
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported type for JSONB scan")
	}
}

// JSONBArray holds a list of JSON objects (template service/labor entries)
type JSONBArray []map[string]interface{}

func (j JSONBArray) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]map[string]interface{}{})
	}
	return json.Marshal(j)
}

func (j *JSONBArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported type for JSONBArray scan")
	}
}
