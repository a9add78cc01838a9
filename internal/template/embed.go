package template

import (
	"embed"
	"io/fs"
)

//go:embed assets
var embeddedAssets embed.FS

// Assets returns the embedded template tree rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// The assets directory is part of the binary; a failure here is a build defect.
		panic(err)
	}
	return sub
}
