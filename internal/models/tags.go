package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TagList stores an ordered list of tags as a JSON array in a single column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}

	if len(data) == 0 {
		*t = TagList{}
		return nil
	}
	return json.Unmarshal(data, t)
}
