package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gemote/cmd/cli/remotes"
	"github.com/temirov/gemote/internal/utils"
	flagutils "github.com/temirov/gemote/internal/utils/flags"
	pathutils "github.com/temirov/gemote/internal/utils/path"
)

const (
	applicationNameConstant                 = "gemote"
	applicationShortDescriptionConstant     = "Declarative git remote management"
	applicationLongDescriptionConstant      = "gemote keeps a repository's git remotes, and optionally those of its submodules and nested repositories, in line with a .gemote config file."
	settingsFileFlagNameConstant            = "settings"
	settingsFileFlagUsageConstant           = "Optional path to an application settings file (YAML or JSON)."
	environmentFileFlagNameConstant         = "env-file"
	environmentFileFlagUsageConstant        = "Optional dotenv file loaded before settings are resolved (repeatable)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	environmentPrefixConstant               = "GEMOTE"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryConstant      = ".config"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "settings_file"
	environmentFilesFieldConstant           = "environment_files"
	repositoryPathFieldConstant             = "repository_path"
	documentPathFieldConstant               = "document_path"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	pathResolutionErrorTemplateConstant     = "invalid --%s value: %w"
	logLevelErrorTemplateConstant           = "invalid log level: %w"
	logFormatErrorTemplateConstant          = "invalid log format: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
)

var (
	supportedLogLevels = []string{
		string(utils.LogLevelDebug),
		string(utils.LogLevelInfo),
		string(utils.LogLevelWarn),
		string(utils.LogLevelError),
	}
	supportedLogFormats = []string{
		string(utils.LogFormatStructured),
		string(utils.LogFormatConsole),
	}
)

// ApplicationConfiguration describes the persisted settings for the CLI.
type ApplicationConfiguration struct {
	Common         ApplicationCommonConfiguration `mapstructure:"common"`
	ConfigFileName string                         `mapstructure:"config_file_name"`
	Sync           remotes.SyncConfiguration      `mapstructure:"sync"`
	Save           remotes.SaveConfiguration      `mapstructure:"save"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	pathResolver           *pathutils.PathResolver
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	settingsFilePath       string
	environmentFilePaths   []string
	logLevelFlagValue      string
	logFormatFlagValue     string
	repositoryContext      *flagutils.RepositoryContextValues
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader := utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
		ConfigurationName:         configurationNameConstant,
		ConfigurationType:         configurationTypeConstant,
		EnvironmentPrefix:         environmentPrefixConstant,
		SearchPaths:               configurationSearchPaths(),
		EmbeddedConfiguration:     embeddedConfiguration,
		EmbeddedConfigurationType: embeddedConfigurationType,
	})

	application := &Application{
		configurationLoader:    configurationLoader,
		pathResolver:           pathutils.NewPathResolver(pathutils.NewHomeExpander()),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	cobraCommand.CompletionOptions.DisableDefaultCmd = true
	cobraCommand.SetContext(context.Background())

	persistentFlagSet := cobraCommand.PersistentFlags()
	persistentFlagSet.StringVar(&application.settingsFilePath, settingsFileFlagNameConstant, "", settingsFileFlagUsageConstant)
	persistentFlagSet.StringSliceVar(&application.environmentFilePaths, environmentFileFlagNameConstant, nil, environmentFileFlagUsageConstant)
	persistentFlagSet.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.DefaultLogLevel), supportedLogLevels, logLevelFlagDescriptionConstant))
	persistentFlagSet.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.DefaultLogFormat), supportedLogFormats, logFormatFlagDescriptionConstant))
	application.repositoryContext = flagutils.BindRepositoryContextFlags(cobraCommand, flagutils.RepositoryContextValues{})

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	documentConfigurationProvider := func() remotes.DocumentConfiguration {
		return remotes.DocumentConfiguration{FileName: application.configuration.ConfigFileName}
	}

	syncBuilder := remotes.SyncCommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() remotes.SyncConfiguration {
			return application.configuration.Sync
		},
		DocumentConfigurationProvider: documentConfigurationProvider,
	}
	syncCommand, syncBuildError := syncBuilder.Build()
	if syncBuildError == nil {
		cobraCommand.AddCommand(syncCommand)
	}

	saveBuilder := remotes.SaveCommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() remotes.SaveConfiguration {
			return application.configuration.Save
		},
		DocumentConfigurationProvider: documentConfigurationProvider,
	}
	saveCommand, saveBuildError := saveBuilder.Build()
	if saveBuildError == nil {
		cobraCommand.AddCommand(saveCommand)
	}

	completionsBuilder := CompletionsCommandBuilder{}
	completionsCommand, completionsBuildError := completionsBuilder.Build()
	if completionsBuildError == nil {
		cobraCommand.AddCommand(completionsCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Command exposes the root Cobra command.
func (application *Application) Command() *cobra.Command {
	return application.rootCommand
}

// Configuration returns the settings resolved by the most recent execution.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

// Execute runs the command hierarchy against the process arguments and ensures logger flushing.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy against the provided arguments and ensures logger flushing.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(arguments))
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	application.configuration = ApplicationConfiguration{}
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.settingsFilePath, application.environmentFilePaths, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logLevel, logLevelError := utils.ParseLogLevel(application.configuration.Common.LogLevel)
	if logLevelError != nil {
		return fmt.Errorf(logLevelErrorTemplateConstant, logLevelError)
	}
	logFormat, logFormatError := utils.ParseLogFormat(application.configuration.Common.LogFormat)
	if logFormatError != nil {
		return fmt.Errorf(logFormatErrorTemplateConstant, logFormatError)
	}
	application.configuration.Common.LogLevel = string(logLevel)
	application.configuration.Common.LogFormat = string(logFormat)

	logger, loggerCreationError := utils.NewLoggerFactoryWithWriter(command.ErrOrStderr()).CreateLogger(logLevel, logFormat)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	repositoryPath, repositoryPathError := application.pathResolver.Resolve(application.repositoryContext.RepositoryPath, "")
	if repositoryPathError != nil {
		return fmt.Errorf(pathResolutionErrorTemplateConstant, flagutils.RepositoryFlagName, repositoryPathError)
	}
	documentPath, documentPathError := application.pathResolver.Resolve(application.repositoryContext.DocumentPath, "")
	if documentPathError != nil {
		return fmt.Errorf(pathResolutionErrorTemplateConstant, flagutils.DocumentFlagName, documentPathError)
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Strings(environmentFilesFieldConstant, application.configurationMetadata.EnvironmentFilesUsed),
		zap.String(repositoryPathFieldConstant, repositoryPath),
		zap.String(documentPathFieldConstant, documentPath),
	)

	updatedContext := command.Context()
	if updatedContext == nil {
		updatedContext = context.Background()
	}
	updatedContext = application.commandContextAccessor.WithSettingsFilePath(updatedContext, application.configurationMetadata.ConfigFileUsed)
	updatedContext = application.commandContextAccessor.WithRepositoryPath(updatedContext, repositoryPath)
	updatedContext = application.commandContextAccessor.WithDocumentPath(updatedContext, documentPath)
	command.SetContext(updatedContext)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil && len(homeDirectory) > 0 {
		searchPaths = append(searchPaths, filepath.Join(homeDirectory, userConfigurationDirectoryConstant, applicationNameConstant))
	}
	return searchPaths
}
