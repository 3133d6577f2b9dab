package web

import "embed"

// Static embeds the front-desk page.
//
//go:embed static
var Static embed.FS
