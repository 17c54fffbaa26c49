package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	temporaryFilePatternConstant     = ".%s.*.tmp"
	temporaryFileErrorTemplate       = "unable to stage %s: %w"
	replaceFileErrorTemplateConstant = "unable to replace %s: %w"
)

// OSFileSystem implements shared.FileSystem on the local disk. Writes are staged in a temporary
// sibling file and renamed into place, so readers never observe a partially written document.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile atomically replaces path with data.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	directory, fileName := filepath.Split(path)
	if len(directory) == 0 {
		directory = "."
	}

	temporaryFile, createError := os.CreateTemp(directory, fmt.Sprintf(temporaryFilePatternConstant, fileName))
	if createError != nil {
		return fmt.Errorf(temporaryFileErrorTemplate, path, createError)
	}
	temporaryPath := temporaryFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.Write(data); writeError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(temporaryFileErrorTemplate, path, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(temporaryFileErrorTemplate, path, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, permissions); chmodError != nil {
		return fmt.Errorf(temporaryFileErrorTemplate, path, chmodError)
	}
	if renameError := os.Rename(temporaryPath, path); renameError != nil {
		return fmt.Errorf(replaceFileErrorTemplateConstant, path, renameError)
	}
	committed = true
	return nil
}
