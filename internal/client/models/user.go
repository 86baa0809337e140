// Package models defines the payloads exchanged with the taskboard service
// and the user record persisted by the session manager.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a resource identifier. The service emits numeric ids, but some
// endpoints echo them back as strings, so both forms are accepted.
type ID string

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits integral ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Role is the user's role as reported by the service. Comparisons are
// case-sensitive.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleStudent Role = "Student"
)

// User is the authenticated principal. Only Role is interpreted by the client.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// HasPayload reports whether raw holds a JSON value other than null.
func HasPayload(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// DecodeUser parses a serialized user record.
func DecodeUser(raw []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
