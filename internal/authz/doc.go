// Package authz is the single authorization authority of the marketplace.
//
// Core concepts:
//
//   - Actor: the authenticated account making a request, reduced to the
//     fields policy decisions need (id, role, superuser flag).
//
//   - Policy: the decision function mapping (actor, action, target) to an
//     allow/deny Decision. Every entry point consults the same Policy
//     instance; no handler or service re-implements a role check inline.
//
//   - Role transitions: the assignable role set and the superadmin lock are
//     owned by this package. ParseAssignableRole is the only way to turn a
//     request string into a role that may be persisted.
//
//   - Visibility: role-conditioned query scoping (which inquiries and
//     properties an actor may observe) is itself a policy decision,
//     returned as a Scope value rather than applied ad hoc.
//
// Usage rules:
//
//  1. Services never compare roles directly; they call Policy methods.
//  2. A deny Decision carries a stable, user-facing reason string.
//  3. New actions get a Policy method, not an inline check.
package authz
