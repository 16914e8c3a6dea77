package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"nird-backend/internal/domain"
)

// AnswerOptions stores a question's options as a JSON array in a text/CLOB column.
type AnswerOptions []domain.AnswerOption

// Value implements the driver.Valuer interface
func (o AnswerOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	data, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (o *AnswerOptions) Scan(value interface{}) error {
	if value == nil {
		*o = AnswerOptions{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("AnswerOptions Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(raw) == 0 || string(raw) == "null" {
		*o = AnswerOptions{}
		return nil
	}
	return json.Unmarshal(raw, o)
}
