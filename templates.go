package intake

import (
	"io/fs"

	"github.com/goliatone/go-intake/pkg/review"
)

// EmbeddedTemplates exposes the built-in review templates so callers can
// reuse or extend them without importing the review package directly.
func EmbeddedTemplates() fs.FS {
	return review.TemplatesFS()
}
