package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	environmentFileLoadErrorTemplateConstant        = "failed to load environment file %s: %w"
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationLoaderOptions describes where application settings come from.
type ConfigurationLoaderOptions struct {
	ConfigurationName         string
	ConfigurationType         string
	EnvironmentPrefix         string
	SearchPaths               []string
	EmbeddedConfiguration     []byte
	EmbeddedConfigurationType string
}

// ConfigurationLoader layers embedded defaults, an optional settings file, dotenv files, and prefixed
// environment variables into a mapstructure-tagged target using Viper.
type ConfigurationLoader struct {
	options                ConfigurationLoaderOptions
	environmentKeyReplacer *strings.Replacer
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed       string
	EnvironmentFilesUsed []string
}

// NewConfigurationLoader creates a loader from the provided options.
func NewConfigurationLoader(options ConfigurationLoaderOptions) *ConfigurationLoader {
	duplicatedOptions := options
	duplicatedOptions.SearchPaths = append([]string(nil), options.SearchPaths...)
	duplicatedOptions.EmbeddedConfiguration = append([]byte(nil), options.EmbeddedConfiguration...)
	duplicatedOptions.EmbeddedConfigurationType = strings.TrimSpace(options.EmbeddedConfigurationType)

	return &ConfigurationLoader{
		options:                duplicatedOptions,
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// LoadConfiguration populates targetConfiguration. Precedence from lowest to highest: embedded configuration,
// settings file (explicit path or first match in the search paths), environment variables. Environment files are
// loaded into the process environment first and never override variables that are already set.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, environmentFilePaths []string, targetConfiguration any) (LoadedConfiguration, error) {
	loadedConfiguration := LoadedConfiguration{}
	for _, environmentFilePath := range environmentFilePaths {
		trimmedPath := strings.TrimSpace(environmentFilePath)
		if len(trimmedPath) == 0 {
			continue
		}
		if loadError := godotenv.Load(trimmedPath); loadError != nil {
			return LoadedConfiguration{}, fmt.Errorf(environmentFileLoadErrorTemplateConstant, trimmedPath, loadError)
		}
		loadedConfiguration.EnvironmentFilesUsed = append(loadedConfiguration.EnvironmentFilesUsed, trimmedPath)
	}

	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.options.ConfigurationName)
	viperInstance.SetConfigType(loader.options.ConfigurationType)

	if len(loader.options.EmbeddedConfiguration) > 0 {
		embeddedType := loader.options.ConfigurationType
		if len(loader.options.EmbeddedConfigurationType) > 0 {
			embeddedType = loader.options.EmbeddedConfigurationType
		}

		viperInstance.SetConfigType(embeddedType)
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.options.EmbeddedConfiguration)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}
		viperInstance.SetConfigType(loader.options.ConfigurationType)
	}

	for _, searchPath := range loader.options.SearchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.options.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	viperInstance.AutomaticEnv()

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	if unmarshalError := viperInstance.Unmarshal(targetConfiguration); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	loadedConfiguration.ConfigFileUsed = viperInstance.ConfigFileUsed()
	return loadedConfiguration, nil
}
