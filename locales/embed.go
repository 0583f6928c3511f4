package locales

import (
	"embed"
	"io/fs"

	"github.com/gobuffalo/buffalo"
)

//go:embed *.yaml
var files embed.FS

// FS returns the translation files, preferring a local locales directory when one exists
func FS() fs.FS {
	return buffalo.NewFS(files, "locales")
}
