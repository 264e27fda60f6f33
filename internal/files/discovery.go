package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"globalalpha/internal/config"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// EntityExtract is a configured subsidiary extract resolved on disk
type EntityExtract struct {
	Entity  string
	Country string
	Path    string
	Exists  bool
	Size    int64
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.basePath, p)
}

// FindEntityExtracts resolves every configured extract, in configuration
// order, and reports whether it exists as a regular file.
func (d *Discovery) FindEntityExtracts(sources []config.EntitySource) []EntityExtract {
	extracts := make([]EntityExtract, 0, len(sources))
	for _, src := range sources {
		ex := EntityExtract{
			Entity:  src.Name,
			Country: src.Country,
			Path:    d.resolve(src.File),
		}
		if info, err := os.Stat(ex.Path); err == nil && !info.IsDir() {
			ex.Exists = true
			ex.Size = info.Size()
		}
		extracts = append(extracts, ex)
	}
	return extracts
}

// FindDataFiles finds all workbooks and CSV files in dir, sorted by name
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Unconfigured returns the data files that no extract or known input
// refers to, so stray exports can be reported.
func Unconfigured(files []FileInfo, extracts []EntityExtract, known ...string) []FileInfo {
	used := make(map[string]bool, len(extracts)+len(known))
	for _, ex := range extracts {
		used[filepath.Clean(ex.Path)] = true
	}
	for _, k := range known {
		used[filepath.Clean(k)] = true
	}

	var out []FileInfo
	for _, f := range files {
		if !used[filepath.Clean(f.Path)] {
			out = append(out, f)
		}
	}
	return out
}
