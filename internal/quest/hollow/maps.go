package hollow

import (
	"embed"
	"io/fs"
)

//go:embed maps/*.yaml
var mapFS embed.FS

// mapRoot exposes the embedded maps with the directory prefix
// stripped, so the tilemap store resolves "overworld" to
// "overworld.yaml".
func mapRoot() fs.FS {
	sub, err := fs.Sub(mapFS, "maps")
	if err != nil {
		panic("hollow: embedded maps missing: " + err.Error())
	}
	return sub
}
