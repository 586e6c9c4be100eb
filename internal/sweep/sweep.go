package sweep

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ZiroWagner/TaskManager/internal/models"
	"github.com/ZiroWagner/TaskManager/internal/storage"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// graceAge protects uploads whose record insert may still be in flight.
const graceAge = time.Hour

// Sweeper periodically removes attachment files on disk whose Attachment
// record no longer exists. Orphans accumulate because delete-side storage
// failures are swallowed and because renaming a project or task strands
// files under the old folder name.
type Sweeper struct {
	db   *gorm.DB
	root string
	cron *cron.Cron
}

// New creates a Sweeper over the uploads root.
func New(db *gorm.DB, uploadsRoot string) *Sweeper {
	return &Sweeper{db: db, root: uploadsRoot}
}

// Start schedules Run at the given interval.
func (s *Sweeper) Start(interval time.Duration) error {
	c := cron.New()
	_, err := c.AddFunc("@every "+interval.String(), func() {
		removed, err := s.Run()
		if err != nil {
			log.Printf("sweep: %v", err)
		}
		if removed > 0 {
			log.Printf("sweep: removed %d orphaned files", removed)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the schedule; an in-flight Run finishes.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run walks the attachments tree once and deletes every file older than
// graceAge that has no matching Attachment record. Returns the number of
// files removed.
func (s *Sweeper) Run() (int, error) {
	base := filepath.Join(s.root, "attachments")
	removed := 0

	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) < graceAge {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return nil
		}
		url := storage.URLPrefix + filepath.ToSlash(rel)

		var count int64
		if err := s.db.Model(&models.Attachment{}).Where("url = ?", url).Count(&count).Error; err != nil {
			return fmt.Errorf("look up attachment record: %w", err)
		}
		if count == 0 {
			if err := os.Remove(p); err != nil {
				log.Printf("sweep: remove %s: %v", p, err)
			} else {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("walk attachments: %w", err)
	}
	return removed, nil
}
