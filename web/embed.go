// Package web provides the embedded portal landing page.
//
// The page is compiled into the binary so the server deploys as a single
// file with no external asset directory.
package web

import _ "embed"

// Index is the portal landing page served at the root path.
//
//go:embed index.html
var Index []byte
