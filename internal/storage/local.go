package storage

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local keeps media on the local filesystem under root, served at
// origin + "/media/".
type Local struct {
	root   string
	origin string
}

func NewLocal(root string, origin string) *Local {
	return &Local{
		root:   root,
		origin: strings.TrimRight(origin, "/"),
	}
}

func (s *Local) Save(dir string, filename string, r io.Reader) (string, error) {
	absDir := filepath.Join(s.root, dir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(absDir, filename))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return s.URL(path.Join(dir, filename)), nil
}

func (s *Local) URL(relativePath string) string {
	return s.origin + "/media/" + strings.TrimLeft(relativePath, "/")
}

// Root is the filesystem directory media is written to, exposed so the
// router can serve it statically.
func (s *Local) Root() string {
	return s.root
}
