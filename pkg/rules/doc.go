// Package rules holds the field rule registry and the rule catalog for the
// two supported rule set variants. Rules are pure functions of a field value
// and a read-only form snapshot; they report the first failing check in
// priority order (required, length, character set, semantic), except the
// strict password rule which aggregates every violation into one message.
//
// NewRuleSet wires a complete catalog:
//
//	registry, err := rules.NewRuleSet(model.VariantV1, rules.WithClock(time.Now))
//	res := registry.Validate(model.FieldEmail, model.Text("JOHN@Example.COM"), nil)
//	// res.Valid == true, res.Normalized == "john@example.com"
package rules
