package maintenance

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/monitoring"
	"github.com/phANTom2303/smart-india-hackathon-2025/pkg/storage"
)

// Janitor sweeps the local upload directory for orphaned evidence files.
// An upload becomes an orphan when the file write succeeded but the record
// insert did not; the two are not transactional.
type Janitor struct {
	store     *storage.LocalStore
	repo      monitoring.Repository
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewJanitor(store *storage.LocalStore, repo monitoring.Repository, schedule string, retentionHrs int, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:     store,
		repo:      repo,
		retention: time.Duration(retentionHrs) * time.Hour,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start schedules the sweep. Returns an error for a malformed schedule.
func (j *Janitor) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.Sweep(context.Background()); err != nil {
			j.logger.Error("upload sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("upload janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("retention", j.retention))
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Sweep deletes files older than the retention window that no monitoring
// update references.
func (j *Janitor) Sweep(ctx context.Context) error {
	entries, err := os.ReadDir(j.store.BaseDir())
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-j.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		// records store the path relative to the server root
		recordPath := filepath.ToSlash(filepath.Join("uploads", "monitoring", entry.Name()))
		referenced, err := j.repo.ExistsByFilePath(ctx, recordPath)
		if err != nil {
			return err
		}
		if referenced {
			continue
		}

		if err := j.store.Delete(ctx, entry.Name()); err != nil {
			j.logger.Warn("failed to remove orphaned upload",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info("removed orphaned uploads", zap.Int("count", removed))
	}
	return nil
}
