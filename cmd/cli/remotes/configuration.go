package remotes

import "strings"

const (
	// DefaultDocumentFileName is the document looked up at the repository root when --config is absent.
	DefaultDocumentFileName = ".gemote"
)

// SyncConfiguration describes settings for the sync command.
type SyncConfiguration struct {
	DryRun    bool `mapstructure:"dry_run"`
	Recursive bool `mapstructure:"recursive"`
}

// SaveConfiguration describes settings for the save command.
type SaveConfiguration struct {
	Force     bool `mapstructure:"force"`
	Recursive bool `mapstructure:"recursive"`
}

// DocumentConfiguration describes where the .gemote document lives by default.
type DocumentConfiguration struct {
	FileName string `mapstructure:"config_file_name"`
}

// DefaultSyncConfiguration returns baseline values for the sync command.
func DefaultSyncConfiguration() SyncConfiguration {
	return SyncConfiguration{DryRun: false, Recursive: false}
}

// DefaultSaveConfiguration returns baseline values for the save command.
func DefaultSaveConfiguration() SaveConfiguration {
	return SaveConfiguration{Force: false, Recursive: false}
}

// sanitize falls back to the default document name when none is configured.
func (configuration DocumentConfiguration) sanitize() DocumentConfiguration {
	sanitized := configuration
	sanitized.FileName = strings.TrimSpace(configuration.FileName)
	if len(sanitized.FileName) == 0 {
		sanitized.FileName = DefaultDocumentFileName
	}
	return sanitized
}
