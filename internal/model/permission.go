package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// OtherCategory groups tokens that carry no "resource:" prefix.
const OtherCategory = "other"

// PermissionSet is a set of opaque "resource:action" tokens.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from tokens, ignoring empty strings and duplicates.
// Tokens are kept verbatim.
func NewPermissionSet(tokens ...string) PermissionSet {
	set := make(PermissionSet, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether token is in the set. A nil set has nothing.
func (s PermissionSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

func (s PermissionSet) Len() int {
	return len(s)
}

// List returns the tokens sorted.
func (s PermissionSet) List() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Categories groups tokens by the resource part before the first colon.
// Only used for display; tokens have no other structure.
func (s PermissionSet) Categories() map[string][]string {
	groups := make(map[string][]string)
	for _, t := range s.List() {
		category := OtherCategory
		if i := strings.Index(t, ":"); i > 0 {
			category = t[:i]
		}
		groups[category] = append(groups[category], t)
	}
	return groups
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	*s = NewPermissionSet(tokens...)
	return nil
}
