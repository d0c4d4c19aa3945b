package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-intake/pkg/model"
)

// Document wraps FormSchema in an OpenAPI 3.0.3 document under
// components.schemas.PatientIntake.
func Document(variant model.Variant, opts ...Option) (*openapi3.T, error) {
	schema, err := FormSchema(variant, opts...)
	if err != nil {
		return nil, err
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Patient intake",
			Description: "Field contract for the patient intake form (rule set " + string(variant) + ").",
			Version:     "1.0.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				SchemaName: schema.NewRef(),
			},
		},
	}, nil
}
