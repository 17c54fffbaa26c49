package remoteconfig

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	configurationFilePermissionsConstant = 0o644
	readErrorTemplateConstant            = "unable to read configuration %s: %w"
	writeErrorTemplateConstant           = "unable to write configuration %s: %w"
	inspectErrorTemplateConstant         = "unable to inspect configuration %s: %w"
	existsErrorTemplateConstant          = "%w: %s"
	fileSystemNotConfiguredMessage       = "configuration store requires a filesystem"
)

// ErrFileSystemNotConfigured indicates the store was constructed without a filesystem.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessage)

// Store loads and saves configuration documents.
type Store struct {
	fileSystem shared.FileSystem
}

// NewStore constructs a Store over the filesystem.
func NewStore(fileSystem shared.FileSystem) (*Store, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Store{fileSystem: fileSystem}, nil
}

// Load reads, decodes, and validates the document at documentPath.
func (store *Store) Load(documentPath string) (*Node, error) {
	if _, statError := store.fileSystem.Stat(documentPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: documentPath}
		}
		return nil, fmt.Errorf(inspectErrorTemplateConstant, documentPath, statError)
	}

	content, readError := store.fileSystem.ReadFile(documentPath)
	if readError != nil {
		return nil, fmt.Errorf(readErrorTemplateConstant, documentPath, readError)
	}

	node, parseError := Parse(content, FormatForPath(documentPath))
	if parseError != nil {
		var decodeError *ParseError
		if errors.As(parseError, &decodeError) {
			decodeError.Path = documentPath
		}
		var validationError *ValidationError
		if errors.As(parseError, &validationError) {
			validationError.Path = documentPath
		}
		return nil, parseError
	}
	return node, nil
}

// Exists reports whether a document is present at documentPath.
func (store *Store) Exists(documentPath string) (bool, error) {
	_, statError := store.fileSystem.Stat(documentPath)
	switch {
	case statError == nil:
		return true, nil
	case errors.Is(statError, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf(inspectErrorTemplateConstant, documentPath, statError)
	}
}

// Save encodes node into documentPath. It returns ErrConfigurationExists when the file exists and overwrite is false.
func (store *Store) Save(documentPath string, node *Node, overwrite bool) error {
	if !overwrite {
		exists, existsError := store.Exists(documentPath)
		if existsError != nil {
			return existsError
		}
		if exists {
			return fmt.Errorf(existsErrorTemplateConstant, ErrConfigurationExists, documentPath)
		}
	}

	content, serializeError := Serialize(node, FormatForPath(documentPath))
	if serializeError != nil {
		return serializeError
	}

	if writeError := store.fileSystem.WriteFile(documentPath, content, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeErrorTemplateConstant, documentPath, writeError)
	}
	return nil
}
