package services

import (
	"context"
	"fmt"
	"os"

	"roundtable/internal/analyzer"
	"roundtable/internal/events"
	"roundtable/internal/utils"
)

// AnalyzerService exposes the code analysis toolbox to the frontend.
type AnalyzerService interface {
	Startup(ctx context.Context)
	AnalyzeFileContent(fileName, content string) analyzer.FileAnalysis
	AnalyzeFolder(ctx context.Context, path string) (*analyzer.FolderProfile, error)
	AnalyzeZip(ctx context.Context, zipPath string) (*analyzer.FolderProfile, error)
	MatchFiles(dir, pattern string) ([]string, error)
}

type analyzerService struct {
	ctx context.Context
}

func NewAnalyzerService() AnalyzerService {
	return &analyzerService{}
}

func (s *analyzerService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *analyzerService) AnalyzeFileContent(fileName, content string) analyzer.FileAnalysis {
	return analyzer.AnalyzeFile(fileName, content)
}

func (s *analyzerService) AnalyzeFolder(ctx context.Context, path string) (*analyzer.FolderProfile, error) {
	if !utils.DirectoryExists(path) {
		return nil, NewValidationError("path", fmt.Sprintf("%s is not a directory", path))
	}
	events.Emit(ctx, events.AnalysisStarted, events.NewInfo("analyzing folder "+path))
	return analyzer.AnalyzeFolder(path)
}

func (s *analyzerService) AnalyzeZip(ctx context.Context, zipPath string) (*analyzer.FolderProfile, error) {
	if _, err := os.Stat(zipPath); err != nil {
		return nil, NewValidationError("path", fmt.Sprintf("cannot read %s", zipPath))
	}
	events.Emit(ctx, events.AnalysisStarted, events.NewInfo("analyzing archive "+zipPath))
	return analyzer.AnalyzeZip(zipPath)
}

func (s *analyzerService) MatchFiles(dir, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, NewValidationError("pattern", "a glob pattern is required")
	}
	return analyzer.MatchFiles(dir, pattern)
}
