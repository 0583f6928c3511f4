package templates

import (
	"embed"
	"io/fs"

	"github.com/gobuffalo/buffalo"
)

//go:embed mail
var files embed.FS

// FS returns a buffalo FS of the email templates, preferring a local templates directory when one exists
func FS() fs.FS {
	return buffalo.NewFS(files, "templates")
}
