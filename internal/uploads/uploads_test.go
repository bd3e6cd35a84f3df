package uploads

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func formFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profilePicture", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	mw.Close()

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestSaveStoresFile(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatal(err)
	}

	file, header := formFile(t, "avatar.PNG", []byte("image-bytes"))
	url, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix) {
		t.Errorf("url = %q, want %q prefix", url, URLPrefix)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want lowercased extension", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(url)))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	file, header := formFile(t, "payload.exe", []byte("nope"))
	if _, err := store.Save(file, header); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := NewStore(t.TempDir(), 8)
	if err != nil {
		t.Fatal(err)
	}
	file, header := formFile(t, "big.jpg", bytes.Repeat([]byte("a"), 64))
	if _, err := store.Save(file, header); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	store, err := NewStore(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Remove("https://cdn.example.com/avatar.png"); err != nil {
		t.Errorf("foreign url: %v", err)
	}
	if err := store.Remove(URLPrefix + "does-not-exist.png"); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

type stubRefs struct {
	urls []string
	err  error
}

func (s *stubRefs) ListProfilePictures(ctx context.Context) ([]string, error) {
	return s.urls, s.err
}

func writeAgedFile(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}
}

func TestJanitorRemovesOnlyOldOrphans(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	writeAgedFile(t, dir, "referenced.png", 48*time.Hour)
	writeAgedFile(t, dir, "orphan-old.png", 48*time.Hour)
	writeAgedFile(t, dir, "orphan-fresh.png", time.Minute)

	refs := &stubRefs{urls: []string{URLPrefix + "referenced.png"}}
	janitor := NewJanitor(store, refs, log, 24*time.Hour)
	janitor.Run()

	if _, err := os.Stat(filepath.Join(dir, "referenced.png")); err != nil {
		t.Error("referenced file must survive")
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan-fresh.png")); err != nil {
		t.Error("fresh orphan must survive the grace period")
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan-old.png")); !errors.Is(err, os.ErrNotExist) {
		t.Error("old orphan must be removed")
	}
}

func TestJanitorKeepsEverythingOnListFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	writeAgedFile(t, dir, "orphan-old.png", 48*time.Hour)

	refs := &stubRefs{err: errors.New("db down")}
	NewJanitor(store, refs, log, 24*time.Hour).Run()

	if _, err := os.Stat(filepath.Join(dir, "orphan-old.png")); err != nil {
		t.Error("nothing may be removed when references cannot be listed")
	}
}
