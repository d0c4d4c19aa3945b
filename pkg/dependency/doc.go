// Package dependency declares which fields must be re-validated when another
// field changes. Edges are static, checked for cycles when declared, and
// resolved one level deep: changing user-id re-checks password, but the
// password re-check does not cascade into re-enter-password.
package dependency
