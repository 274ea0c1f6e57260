package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is an arbitrary key/value map attached to a document.
// It is persisted as a JSON string and decoded on read.
type Metadata map[string]any

// Position is an opaque locator for a highlight inside its document. It
// holds any JSON value (object, array, string, number) exactly as supplied;
// the store never interprets it.
type Position []byte

func (Metadata) GormDataType() string {
	return "text"
}

func (m Metadata) Value() (driver.Value, error) {
	return encodeJSON(map[string]any(m))
}

func (m *Metadata) Scan(src any) error {
	var decoded map[string]any
	if err := decodeJSON(src, &decoded); err != nil {
		return fmt.Errorf("decode metadata: %w", err)
	}
	*m = decoded
	return nil
}

func (Position) GormDataType() string {
	return "text"
}

func (p Position) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *Position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = nil
		return nil
	}
	*p = append((*p)[:0], data...)
	return nil
}

// Value stores the locator as its JSON text; an empty locator is NULL.
func (p Position) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	if !json.Valid(p) {
		return nil, fmt.Errorf("encode position: invalid JSON")
	}
	return string(p), nil
}

func (p *Position) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = nil
	case string:
		*p = Position(v)
	case []byte:
		*p = append(Position(nil), v...)
	default:
		return fmt.Errorf("decode position: unsupported type %T", src)
	}
	if len(*p) == 0 || string(*p) == "null" {
		*p = nil
	}
	return nil
}

// encodeJSON stores nil maps as NULL so absent values stay absent.
func encodeJSON(m map[string]any) (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeJSON(src any, dst *map[string]any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*dst = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported type %T", src)
	}
	if len(raw) == 0 || string(raw) == "null" {
		*dst = nil
		return nil
	}
	return json.Unmarshal(raw, dst)
}
