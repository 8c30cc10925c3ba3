package policy

import (
	"sort"
	"strings"
)

// Access is the access level a rule grants.
type Access string

const (
	// AccessPublic allows the request unconditionally.
	AccessPublic Access = "public"
	// AccessAuthenticated requires an authenticated caller, any role.
	AccessAuthenticated Access = "authenticated"
	// AccessRole requires an authenticated caller holding Rule.Role.
	AccessRole Access = "role"
)

// Decision is the single outcome of evaluating a request against the table.
type Decision int

const (
	// Allow lets the request proceed to its handler.
	Allow Decision = iota
	// DenyUnauthenticated maps to HTTP 401.
	DenyUnauthenticated
	// DenyForbidden maps to HTTP 403.
	DenyForbidden
)

// String returns the decision name for logging
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	}
	return "unknown"
}

// Subject is the caller's authentication state as seen by the policy.
type Subject struct {
	Authenticated bool
	Roles         []string
}

// HasRole returns true if the subject's role set contains role
func (s Subject) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Rule maps a path pattern and method set to an access level. Patterns are
// slash-separated segments; a segment of "*" matches any single segment and
// a trailing "**" matches any remaining suffix, including the empty one.
// An empty Methods set matches every method.
type Rule struct {
	Pattern string
	Methods []string
	Access  Access
	Role    string
}

func (r Rule) matchesMethod(method string) bool {
	if len(r.Methods) == 0 {
		return true
	}
	for _, m := range r.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func (r Rule) matchesPath(path string) bool {
	pattern := splitPath(r.Pattern)
	segments := splitPath(path)

	for i, p := range pattern {
		if p == "**" {
			return true
		}
		if i >= len(segments) {
			return false
		}
		if p != "*" && p != segments[i] {
			return false
		}
	}
	return len(pattern) == len(segments)
}

// specificity orders rules so that exact segments beat wildcards and longer
// patterns beat shorter ones. Higher is more specific.
func (r Rule) specificity() int {
	score := 0
	for _, p := range splitPath(r.Pattern) {
		switch p {
		case "**":
			score += 1
		case "*":
			score += 10
		default:
			score += 100
		}
	}
	return score
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Table is the static route policy. It is built once at startup and
// read-only afterwards, so evaluation needs no locking.
type Table struct {
	rules []Rule
}

// NewTable builds a Table from the given rules, ordered most specific
// first. Declaration order breaks ties.
func NewTable(rules []Rule) *Table {
	ordered := append([]Rule(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].specificity() > ordered[j].specificity()
	})
	return &Table{rules: ordered}
}

// Decide evaluates a request against the table. The decision is total:
// requests matching no rule fall back to authenticated-only access.
func (t *Table) Decide(method, path string, subject Subject) Decision {
	access, role := t.match(method, path)

	switch {
	case access == AccessPublic:
		return Allow
	case !subject.Authenticated:
		return DenyUnauthenticated
	case access == AccessRole && !subject.HasRole(role):
		return DenyForbidden
	default:
		return Allow
	}
}

func (t *Table) match(method, path string) (Access, string) {
	for _, r := range t.rules {
		if r.matchesMethod(method) && r.matchesPath(path) {
			return r.Access, r.Role
		}
	}
	// Unmatched paths require authentication.
	return AccessAuthenticated, ""
}
