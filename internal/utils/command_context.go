package utils

import "context"

const (
	settingsFilePathContextKeyConstant = commandContextKey("settingsFilePath")
	repositoryPathContextKeyConstant   = commandContextKey("repositoryPath")
	documentPathContextKeyConstant     = commandContextKey("documentPath")
)

type commandContextKey string

// CommandContextAccessor manages values the root command stores for its subcommands.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithSettingsFilePath records the application settings file actually used.
func (accessor CommandContextAccessor) WithSettingsFilePath(parentContext context.Context, settingsFilePath string) context.Context {
	return withStringValue(parentContext, settingsFilePathContextKeyConstant, settingsFilePath)
}

// SettingsFilePath returns the application settings file recorded in the context.
func (accessor CommandContextAccessor) SettingsFilePath(executionContext context.Context) (string, bool) {
	return stringValue(executionContext, settingsFilePathContextKeyConstant)
}

// WithRepositoryPath records the repository path requested with --repo.
func (accessor CommandContextAccessor) WithRepositoryPath(parentContext context.Context, repositoryPath string) context.Context {
	return withStringValue(parentContext, repositoryPathContextKeyConstant, repositoryPath)
}

// RepositoryPath returns the requested repository path.
func (accessor CommandContextAccessor) RepositoryPath(executionContext context.Context) (string, bool) {
	return stringValue(executionContext, repositoryPathContextKeyConstant)
}

// WithDocumentPath records the .gemote document path requested with --config.
func (accessor CommandContextAccessor) WithDocumentPath(parentContext context.Context, documentPath string) context.Context {
	return withStringValue(parentContext, documentPathContextKeyConstant, documentPath)
}

// DocumentPath returns the requested .gemote document path.
func (accessor CommandContextAccessor) DocumentPath(executionContext context.Context) (string, bool) {
	return stringValue(executionContext, documentPathContextKeyConstant)
}

func withStringValue(parentContext context.Context, key commandContextKey, value string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func stringValue(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, available := executionContext.Value(key).(string)
	if !available || len(value) == 0 {
		return "", false
	}
	return value, true
}
