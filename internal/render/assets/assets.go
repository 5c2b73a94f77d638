// Package assets holds binary assets embedded into the export renderers.
package assets

import _ "embed"

// LogoPNG is the brand mark stamped on the PDF title block and the DOCX
// running header.
//
//go:embed logo.png
var LogoPNG []byte
