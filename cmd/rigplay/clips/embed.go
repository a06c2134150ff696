// Package clips provides the built-in anteater animation library.
package clips

import _ "embed"

// Anteater is the default clip library document.
//
//go:embed anteater.yaml
var Anteater []byte
