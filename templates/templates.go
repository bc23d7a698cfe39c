// Package templates embeds the built-in target templates.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.tpl
var embedded embed.FS

// FS exposes the built-in templates at the root of the returned fs.FS.
func FS() fs.FS {
	return embedded
}
