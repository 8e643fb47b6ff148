// Package persistence provides file-based storage for analysis reports.
package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apidrift/apidrift/internal/domain/change"
	"github.com/apidrift/apidrift/internal/errors"
	"github.com/apidrift/apidrift/internal/fileutil"
)

// MaxReportFileSize is the maximum allowed size for report files (2MB).
// This prevents denial of service from maliciously crafted large files.
const MaxReportFileSize = 2 << 20

// ErrReportNotFound is returned when a stored report does not exist.
var ErrReportNotFound = errors.NotFound("persistence", "report not found")

// checkContext checks if the context is canceled and returns the error if so.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// StoredReport is an analysis report persisted with its provenance.
type StoredReport struct {
	// ID identifies the stored report; assigned on save when empty.
	ID string `json:"id"`
	// FilePath is the analyzed source file.
	FilePath string `json:"file_path"`
	// OldVersion and NewVersion label the compared snapshots (refs, tags,
	// or plain file paths).
	OldVersion string `json:"old_version,omitempty"`
	NewVersion string `json:"new_version,omitempty"`
	// CreatedAt is when the report was stored.
	CreatedAt time.Time `json:"created_at"`
	// Report is the analysis result.
	Report *change.Report `json:"report"`
}

// FileReportRepository stores analysis reports as JSON files, one file
// per report, written atomically.
type FileReportRepository struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileReportRepository creates a file-based report repository rooted
// at basePath. The directory is created if missing.
func NewFileReportRepository(basePath string) (*FileReportRepository, error) {
	// 0700: reports may embed source excerpts
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, errors.IOWrap(err, "persistence.NewFileReportRepository", "failed to create repository directory")
	}
	return &FileReportRepository{basePath: basePath}, nil
}

// Save persists a report. A missing ID is assigned; a missing CreatedAt
// is set to now.
func (r *FileReportRepository) Save(ctx context.Context, stored *StoredReport) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if stored.Report == nil {
		return errors.Validation("persistence.Save", "stored report has no report payload")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return errors.InternalWrap(err, "persistence.Save", "failed to marshal report")
	}

	if err := fileutil.AtomicWriteFile(r.reportFilePath(stored.ID), data, 0o600); err != nil {
		return errors.IOWrap(err, "persistence.Save", "failed to write report file")
	}
	return nil
}

// FindByID retrieves a stored report by its ID.
func (r *FileReportRepository) FindByID(ctx context.Context, id string) (*StoredReport, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := fileutil.ReadFileLimited(r.reportFilePath(id), MaxReportFileSize)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReportNotFound
		}
		return nil, errors.IOWrap(err, "persistence.FindByID", "failed to read report file")
	}

	var stored StoredReport
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, errors.InternalWrap(err, "persistence.FindByID", "failed to unmarshal report")
	}
	return &stored, nil
}

// List returns all stored reports, newest first. Unreadable or malformed
// files are skipped.
func (r *FileReportRepository) List(ctx context.Context) ([]*StoredReport, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return nil, errors.IOWrap(err, "persistence.List", "failed to read repository directory")
	}

	reports := make([]*StoredReport, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := checkContext(ctx); err != nil {
			return nil, err
		}

		data, err := fileutil.ReadFileLimited(filepath.Join(r.basePath, entry.Name()), MaxReportFileSize)
		if err != nil {
			continue
		}
		var stored StoredReport
		if err := json.Unmarshal(data, &stored); err != nil {
			continue
		}
		reports = append(reports, &stored)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// FindLatestForFile returns the most recent report for a source file.
func (r *FileReportRepository) FindLatestForFile(ctx context.Context, filePath string) (*StoredReport, error) {
	reports, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, stored := range reports {
		if stored.FilePath == filePath {
			return stored, nil
		}
	}
	return nil, ErrReportNotFound
}

// Delete removes a stored report.
func (r *FileReportRepository) Delete(ctx context.Context, id string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.reportFilePath(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrReportNotFound
		}
		return errors.IOWrap(err, "persistence.Delete", "failed to delete report file")
	}
	return nil
}

func (r *FileReportRepository) reportFilePath(id string) string {
	// Base strips path separators so an ID can never escape basePath
	return filepath.Join(r.basePath, filepath.Base(id)+".json")
}
