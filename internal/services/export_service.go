package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"roundtable/internal/docgen"
	"roundtable/internal/utils"
)

// ExportService writes generated documents into a user-chosen directory so
// they can be used outside the app.
type ExportService interface {
	Startup(ctx context.Context)
	WriteAll(dir string, docs []docgen.Document) ([]string, error)
}

type exportService struct {
	ctx context.Context
}

func NewExportService() ExportService {
	return &exportService{}
}

func (s *exportService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// WriteAll writes each document under dir and returns the written paths.
// Existing files with the same name are overwritten.
func (s *exportService) WriteAll(dir string, docs []docgen.Document) ([]string, error) {
	if dir == "" {
		return nil, NewValidationError("dir", "an export directory is required")
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Name)
		if err := os.WriteFile(path, []byte(doc.Content), 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", doc.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
