// Package api holds the OpenAPI document served by the HTTP adapter.
package api

import _ "embed"

// OpenAPISpec is the OpenAPI 3 document in YAML.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
