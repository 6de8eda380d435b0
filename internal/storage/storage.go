// Package storage persists uploaded media (avatars, diary images) and
// resolves the absolute URLs clients receive back.
package storage

import "io"

type Storage interface {
	// Save writes the file under dir/filename and returns its public URL.
	Save(dir string, filename string, r io.Reader) (string, error)
	// URL resolves a stored relative path to an absolute URL.
	URL(relativePath string) string
}
