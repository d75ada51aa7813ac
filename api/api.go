// Package api embeds the OpenAPI document for the Dinos JSON API.
// The HTTP server serves it at /openapi.yaml.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
