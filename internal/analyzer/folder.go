package analyzer

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	filepathx "github.com/yargevad/filepathx"
)

const largestFileCount = 10

// projectTypeOrder is the fixed priority in which languages are checked for
// the 30% majority rule; ties resolve to the earliest entry.
var projectTypeOrder = []string{"python", "javascript", "typescript", "java", "go"}

// FileSize pairs a file name with its byte size.
type FileSize struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// FolderProfile summarizes a directory tree.
type FolderProfile struct {
	TotalFiles   int            `json:"totalFiles"`
	Folders      []string       `json:"folders"`
	Languages    map[string]int `json:"languages"`
	FileTypes    map[string]int `json:"fileTypes"`
	LargestFiles []FileSize     `json:"largestFiles"`
	ProjectType  string         `json:"projectType"`
	GitBranches  []string       `json:"gitBranches,omitempty"`
}

// AnalyzeFolder walks root, counting files per language and extension,
// tracking the ten largest files and classifying the project type. Entries
// that cannot be read are skipped, never fatal.
func AnalyzeFolder(root string) (*FolderProfile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	profile := &FolderProfile{
		Languages:   make(map[string]int),
		FileTypes:   make(map[string]int),
		ProjectType: "unknown",
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// unreadable entry: skip, keep walking
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			profile.Folders = append(profile.Folders, path)
			return nil
		}

		profile.TotalFiles++
		if st, err := d.Info(); err == nil {
			profile.LargestFiles = append(profile.LargestFiles, FileSize{Name: d.Name(), Size: st.Size()})
		}
		lang := DetectLanguage(path, "")
		profile.Languages[lang]++
		profile.FileTypes[strings.ToLower(filepath.Ext(d.Name()))]++
		return nil
	})

	sort.SliceStable(profile.LargestFiles, func(i, j int) bool {
		return profile.LargestFiles[i].Size > profile.LargestFiles[j].Size
	})
	if len(profile.LargestFiles) > largestFileCount {
		profile.LargestFiles = profile.LargestFiles[:largestFileCount]
	}

	profile.ProjectType = classifyProjectType(profile.Languages, profile.TotalFiles)
	profile.GitBranches = branchNames(root)
	return profile, nil
}

// classifyProjectType declares the first language in the fixed priority
// order whose file count exceeds 30% of the total.
func classifyProjectType(languages map[string]int, totalFiles int) string {
	if totalFiles == 0 {
		return "unknown"
	}
	for _, lang := range projectTypeOrder {
		if float64(languages[lang]) > float64(totalFiles)*0.3 {
			return lang
		}
	}
	return "unknown"
}

// branchNames lists local branch names when root is a git repository,
// nil otherwise.
func branchNames(root string) []string {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil
	}
	iter, err := repo.Branches()
	if err != nil {
		return nil
	}
	var names []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	return names
}

// AnalyzeZip extracts an archive into a temporary directory and profiles the
// extracted tree. Entries escaping the extraction root are rejected.
func AnalyzeZip(zipPath string) (*FolderProfile, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	tempDir, err := os.MkdirTemp("", "roundtable-zip-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	for _, entry := range reader.File {
		if err := extractEntry(tempDir, entry); err != nil {
			return nil, err
		}
	}
	return AnalyzeFolder(tempDir)
}

func extractEntry(destRoot string, entry *zip.File) error {
	dest := filepath.Join(destRoot, filepath.FromSlash(entry.Name))
	rel, err := filepath.Rel(destRoot, dest)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("archive entry %q escapes extraction root", entry.Name)
	}
	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.ReadFrom(src); err != nil {
		return err
	}
	return nil
}

// MatchFiles expands a **-capable glob pattern rooted at dir, returning only
// regular files.
func MatchFiles(dir, pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("pattern is required")
	}
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(dir, pattern)
	}
	matches, err := filepathx.Glob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	var files []string
	for _, p := range matches {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			files = append(files, filepath.Clean(p))
		}
	}
	sort.Strings(files)
	return files, nil
}
