// Package policy implements the route-level authorization policy.
//
// Routes are described declaratively as a table of rules mapping path
// patterns and methods to an access level (public, authenticated-only, or
// a required role). The table is built once at startup and evaluated
// centrally for every request, replacing per-handler authorization checks.
package policy
