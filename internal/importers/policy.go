package importers

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPolicy = errors.New("unknown import policy")

// Policy decides what happens to an imported record whose email matches a
// stored candidate.
type Policy string

const (
	// PolicySkip keeps the stored candidate untouched and drops the imported record.
	PolicySkip Policy = "skip"
	// PolicyOverwrite replaces the stored candidate's fields with the imported non-empty ones.
	PolicyOverwrite Policy = "overwrite"
	// PolicyDuplicate always inserts the imported record as a new candidate.
	PolicyDuplicate Policy = "duplicate"
)

// DefaultPolicy is used when the operator does not choose one.
const DefaultPolicy = PolicySkip

// Policies lists the accepted policies.
func Policies() []Policy {
	return []Policy{PolicySkip, PolicyOverwrite, PolicyDuplicate}
}

// ParsePolicy accepts a policy name in any case. An empty name yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPolicy, nil
	}
	for _, p := range Policies() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Valid reports whether p is one of the accepted policies.
func (p Policy) Valid() bool {
	switch p {
	case PolicySkip, PolicyOverwrite, PolicyDuplicate:
		return true
	}
	return false
}
