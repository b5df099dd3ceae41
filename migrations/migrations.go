// Package migrations embeds the versioned schema so the migrate command and the e2e harness
// apply exactly what ships in the binary.
package migrations

import (
	"embed"
	"io/fs"
	"slices"
)

//go:embed *.sql atlas.sum
var FS embed.FS

// Versioned lists the .sql files in apply order.
func Versioned() ([]string, error) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}
