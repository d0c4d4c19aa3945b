// Package review builds the read-only summary shown before submitting an
// intake form: identity rows checked against the active rule set, the
// requested-info answers with readable labels, and a masked password. Reviews
// render as HTML or plain text through pongo2 templates.
package review
