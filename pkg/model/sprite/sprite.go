package sprite

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Sprite is an opaque image reference: either an absolute URL or a path
// relative to the executable.
type Sprite string

func (s Sprite) IsRemote() bool {
	u, err := url.Parse(string(s))
	if err != nil {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

func (s Sprite) Filepath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("could not get working directory: %w", err)
	}

	cwd := path.Dir(filepath.ToSlash(exe))
	path := path.Join(cwd, string(s))

	return filepath.FromSlash(path), nil
}
