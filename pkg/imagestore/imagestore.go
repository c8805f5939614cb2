package imagestore

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes uploaded product images into a fixed directory and hands out
// the server-relative paths referenced by product rows. Filenames are random
// URL-safe tokens, so two uploads never collide.
type Store struct {
	dir       string
	urlPrefix string
}

// NewStore creates a store rooted at dir. Paths returned by Save are
// urlPrefix plus the generated filename.
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Store{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Save writes the image under a freshly generated filename, keeping the
// extension of the original upload, and returns its server-relative path.
func (s *Store) Save(originalName string, content io.Reader) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	if err := s.write(name, content); err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + name, nil
}

// Replace overwrites the stored file behind imageURL with new content. The
// filename is kept, so existing product rows stay valid.
func (s *Store) Replace(imageURL string, content io.Reader) error {
	return s.write(path.Base(imageURL), content)
}

// Remove deletes the stored file behind imageURL.
func (s *Store) Remove(imageURL string) error {
	name := path.Base(imageURL)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, content io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create image file %s: %w", name, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write image file %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image file %s: %w", name, err)
	}
	return nil
}
