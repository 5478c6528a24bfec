// Package assets embeds the static files served at the edge of the
// ingress surface — currently only the favicon, per spec.md §1/§6.
package assets

import "embed"

//go:embed favicon.ico
var Files embed.FS
