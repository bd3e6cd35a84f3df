package uploads

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// ReferenceLister reports every profile picture URL still referenced by a
// user record
type ReferenceLister interface {
	ListProfilePictures(ctx context.Context) ([]string, error)
}

// Janitor removes stored files no user references anymore. Files younger
// than minAge are kept so an upload racing its database write survives.
type Janitor struct {
	store  *Store
	refs   ReferenceLister
	log    *logrus.Logger
	minAge time.Duration
}

func NewJanitor(store *Store, refs ReferenceLister, log *logrus.Logger, minAge time.Duration) *Janitor {
	return &Janitor{store: store, refs: refs, log: log, minAge: minAge}
}

// Run performs one sweep. Scheduled via cron from main.
func (j *Janitor) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	urls, err := j.refs.ListProfilePictures(ctx)
	if err != nil {
		j.log.Errorf("Upload janitor: failed to list references: %v", err)
		return
	}
	referenced := make(map[string]bool, len(urls))
	for _, url := range urls {
		referenced[path.Base(url)] = true
	}

	entries, err := os.ReadDir(j.store.Dir())
	if err != nil {
		j.log.Errorf("Upload janitor: failed to read upload dir: %v", err)
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < j.minAge {
			continue
		}
		if err := os.Remove(filepath.Join(j.store.Dir(), entry.Name())); err != nil {
			j.log.Errorf("Upload janitor: failed to remove %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}
	if removed > 0 {
		j.log.Infof("Upload janitor: removed %d orphaned file(s)", removed)
	}
}
