// Package openapi embeds the OpenAPI document served by the simulator.
package openapi

import _ "embed"

// YAML contains the embedded OpenAPI document.
//
//go:embed openapi.yaml
var YAML []byte
