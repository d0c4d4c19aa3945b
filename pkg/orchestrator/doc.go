// Package orchestrator ties the rule registry, error state tracker and
// dependency resolver into a Form that presentation adapters drive: input
// events go through FieldChanged, explicit validate and submit actions
// through ValidateAll and AttemptSubmit, and results flow back through a
// Listener.
package orchestrator
