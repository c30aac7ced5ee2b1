package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// ID is a 64-bit entity identifier. It marshals to a JSON string so that
// values above 2^53 survive numeric-precision-limited clients, and it
// unmarshals from either a string or a bare number.
type ID uint64

// RootID is the parent sentinel for top-level folders.
const RootID ID = 0

func (id ID) Uint64() uint64 { return uint64(id) }

func (id ID) IsZero() bool { return id == 0 }

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseID parses a decimal identifier. Empty input parses to zero.
func ParseID(s string) (ID, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ID(v), nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("unmarshal id: %w", err)
		}
		v, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = v
		return nil
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("unmarshal id: %w", err)
	}
	*id = ID(v)
	return nil
}

// IDList marshals as a JSON array of decimal strings and accepts arrays of
// strings or numbers on input.
type IDList []ID

func (l IDList) Contains(id ID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}
