// Package templates holds the file templates fastaccel renders into
// generated projects and the registry used to look them up by id.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed files
var filesFS embed.FS

// readSource loads one embedded template body. Paths are relative to files/.
func readSource(path string) (string, error) {
	data, err := fs.ReadFile(filesFS, "files/"+path)
	if err != nil {
		return "", fmt.Errorf("reading embedded template %s: %w", path, err)
	}
	return string(data), nil
}
