package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/gemote/internal/gitrepo"
)

const hiddenEntryPrefixConstant = "."

// FilesystemScanner locates repository roots below a directory without crossing git boundaries.
type FilesystemScanner struct{}

// NewFilesystemScanner constructs a scanner backed by filepath.WalkDir.
func NewFilesystemScanner() *FilesystemScanner {
	return &FilesystemScanner{}
}

// Scan walks rootPath depth-first and returns the slash-separated relative paths of directories containing a .git
// entry. It skips hidden directories and knownPaths, never descends into a discovered repository, and treats
// unreadable directories as empty.
func (scanner *FilesystemScanner) Scan(rootPath string, knownPaths map[string]struct{}) []string {
	var repositoryPaths []string

	_ = filepath.WalkDir(rootPath, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil || directoryEntry == nil {
			return nil
		}
		if currentPath == rootPath || !directoryEntry.IsDir() {
			return nil
		}
		if strings.HasPrefix(directoryEntry.Name(), hiddenEntryPrefixConstant) {
			return fs.SkipDir
		}

		relativePath, relativeError := filepath.Rel(rootPath, currentPath)
		if relativeError != nil {
			return fs.SkipDir
		}
		relativePath = filepath.ToSlash(relativePath)

		if _, known := knownPaths[relativePath]; known {
			return fs.SkipDir
		}

		if gitrepo.IsRepositoryRoot(currentPath) {
			repositoryPaths = append(repositoryPaths, relativePath)
			return fs.SkipDir
		}
		return nil
	})

	sort.Strings(repositoryPaths)
	return repositoryPaths
}
