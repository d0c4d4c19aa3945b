// Package openapi exports the intake field contract as an OpenAPI 3 schema
// so API gateways and client generators can reuse the shape constraints
// (lengths, patterns, enumerations, required fields) enforced by the rules
// package.
package openapi
