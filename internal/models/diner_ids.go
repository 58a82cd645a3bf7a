package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DinerIDs is a set of diner IDs stored as a slice. Order carries no meaning
// and entries are unique.
type DinerIDs []string

// Contains reports whether id is in the set.
func (s DinerIDs) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the set with id removed.
func (s DinerIDs) Without(id string) DinerIDs {
	out := make(DinerIDs, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// With returns a copy of the set with id added. Adding an existing id is a no-op.
func (s DinerIDs) With(id string) DinerIDs {
	out := make(DinerIDs, 0, len(s)+1)
	out = append(out, s...)
	if !s.Contains(id) {
		out = append(out, id)
	}
	return out
}

// UnmarshalJSON accepts the array form as well as the older single-owner
// form, where assignedTo was a diner ID string or null.
func (s *DinerIDs) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("decode assignedTo: %w", err)
		}
		if id == "" {
			*s = DinerIDs{}
			return nil
		}
		*s = DinerIDs{id}
		return nil
	}

	var ids []string
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		return fmt.Errorf("decode assignedTo: %w", err)
	}
	if ids == nil {
		*s = nil
		return nil
	}
	out := make(DinerIDs, 0, len(ids))
	for _, id := range ids {
		if !out.Contains(id) {
			out = append(out, id)
		}
	}
	*s = out
	return nil
}
