// Package model defines the typed vocabulary shared by the intake engine:
// field identifiers, raw field values, form snapshots, validation results and
// the failure taxonomy. Field identifiers form a closed enumeration so rule
// tables, trackers and adapters are keyed by constants rather than free
// strings; unknown identifiers are rejected at registration time. Values are
// owned by the presentation layer and reach the engine only through
// read-only snapshots.
package model
