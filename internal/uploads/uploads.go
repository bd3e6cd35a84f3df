package uploads

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is the public path under which stored files are served
const URLPrefix = "/uploads/"

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Store writes uploaded profile pictures to a local directory
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the backing directory
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a generated name and returns its
// public URL path
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}
	if header.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	name := fmt.Sprintf("profile-%d-%s%s", time.Now().UnixNano(), hex.EncodeToString(suffix), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxBytes)); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path.Join(URLPrefix, name), nil
}

// Remove deletes the stored file behind a public URL path, ignoring files
// outside the store
func (s *Store) Remove(url string) error {
	name := path.Base(url)
	if !strings.HasPrefix(url, URLPrefix) || name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}
	return nil
}
