package appfs

import "embed"

// FS embeds non-Go app files; goose reads migrations from here.
//go:embed migrations
var FS embed.FS
