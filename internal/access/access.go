// Package access decides what a signed-in principal may see or do.
// Every check here is pure: no I/O, no errors, a missing token is just false.
package access

import "go-pos-console/internal/model"

// Mode selects how a list of required tokens is combined.
type Mode string

const (
	ModeAll Mode = "ALL"
	ModeAny Mode = "ANY"
)

// IsAllowed reports whether p satisfies required under mode.
// A nil principal is always denied. An empty requirement is always allowed otherwise.
// Unknown modes are treated as ModeAll.
func IsAllowed(required []string, mode Mode, p *model.Principal) bool {
	if p == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}

	if mode == ModeAny {
		for _, token := range required {
			if p.Permissions.Has(token) {
				return true
			}
		}
		return false
	}

	for _, token := range required {
		if !p.Permissions.Has(token) {
			return false
		}
	}
	return true
}

// Allows is the single-token form of IsAllowed.
func Allows(token string, p *model.Principal) bool {
	if p == nil {
		return false
	}
	return p.Permissions.Has(token)
}

// Requirement bundles tokens with the way they combine.
type Requirement struct {
	Tokens []string `json:"tokens"`
	Mode   Mode     `json:"mode"`
}

// Any requires at least one of tokens.
func Any(tokens ...string) Requirement {
	return Requirement{Tokens: tokens, Mode: ModeAny}
}

// All requires every one of tokens.
func All(tokens ...string) Requirement {
	return Requirement{Tokens: tokens, Mode: ModeAll}
}

// None requires nothing beyond being signed in.
func None() Requirement {
	return Requirement{Mode: ModeAll}
}

// SatisfiedBy reports whether p meets the requirement.
func (r Requirement) SatisfiedBy(p *model.Principal) bool {
	return IsAllowed(r.Tokens, r.Mode, p)
}
