package remotes

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/repos/dependencies"
	"github.com/temirov/gemote/internal/repos/reconcile"
	flagutils "github.com/temirov/gemote/internal/utils/flags"
)

const (
	saveUseConstant                   = "save"
	saveShortDescription              = "Save current local remotes into .gemote"
	saveLongDescription               = "save records the repository's remotes in the .gemote config. With --recursive it also records the remotes of submodules and nested repositories under their relative paths."
	savedMessageTemplateConstant      = "Saved remotes to %s\n"
	documentExistsErrorTemplate       = "%s already exists. Use --force to replace it."
	saveDocumentErrorTemplateConstant = "failed to write config to %s: %w"
	saveFinishedMessageConstant       = "saved configuration"
	logFieldSubmodulesConstant        = "submodules"
)

// SaveCommandBuilder assembles the save command.
type SaveCommandBuilder struct {
	LoggerProvider                LoggerProvider
	HumanReadableLoggingProvider  func() bool
	ConfigurationProvider         func() SaveConfiguration
	DocumentConfigurationProvider func() DocumentConfiguration
	Collaborators                 Collaborators
}

// Build constructs the save command.
func (builder *SaveCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   saveUseConstant,
		Short: saveShortDescription,
		Long:  saveLongDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		Force:     flagutils.DefaultForceDefinition(),
		Recursive: flagutils.DefaultRecursiveDefinition(),
	})

	return command, nil
}

func (builder *SaveCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	executionFlags, executionFlagsAvailable := flagutils.ResolveExecutionFlags(command)

	force := configuration.Force
	if executionFlagsAvailable && executionFlags.ForceSet {
		force = executionFlags.Force
	}

	recursive := configuration.Recursive
	if executionFlagsAvailable && executionFlags.RecursiveSet {
		recursive = executionFlags.Recursive
	}

	logger := resolveLogger(builder.LoggerProvider)
	executionContext := command.Context()

	resolvedTarget, targetError := resolveTarget(executionContext, builder.Collaborators, builder.resolveDocumentConfiguration(), logger, humanReadableLogging(builder.HumanReadableLoggingProvider))
	if targetError != nil {
		return targetError
	}

	store, storeError := dependencies.ResolveConfigurationStore(builder.Collaborators.FileSystem)
	if storeError != nil {
		return storeError
	}

	if !force {
		exists, existsError := store.Exists(resolvedTarget.documentPath)
		if existsError != nil {
			return existsError
		}
		if exists {
			return fmt.Errorf(documentExistsErrorTemplate, resolvedTarget.documentPath)
		}
	}

	diagnostics := newDiagnosticReporter(command, logger)
	childDiscoverer, discovererError := newWalkerDiscoverer(recursive, resolvedTarget.locator, diagnostics, logger)
	if discovererError != nil {
		return discovererError
	}

	walker, walkerError := reconcile.NewWalker(
		reconcile.WalkerDependencies{Discoverer: childDiscoverer, Diagnostics: diagnostics, Logger: logger},
		reconcile.WalkerOptions{Recursive: recursive},
	)
	if walkerError != nil {
		return walkerError
	}

	visitor := reconcile.NewSnapshotVisitor()
	if walkError := walker.Walk(executionContext, resolvedTarget.repository, visitor); walkError != nil {
		return walkError
	}

	snapshot := visitor.Node()
	if saveError := store.Save(resolvedTarget.documentPath, snapshot, true); saveError != nil {
		return fmt.Errorf(saveDocumentErrorTemplateConstant, resolvedTarget.documentPath, saveError)
	}

	logger.Info(
		saveFinishedMessageConstant,
		zap.String(logFieldDocumentPathConstant, resolvedTarget.documentPath),
		zap.Strings(logFieldSubmodulesConstant, snapshot.SubmodulePaths()),
		zap.Bool(logFieldRecursiveConstant, recursive),
	)

	fmt.Fprintf(command.OutOrStdout(), savedMessageTemplateConstant, resolvedTarget.documentPath)
	return nil
}

func (builder *SaveCommandBuilder) resolveConfiguration() SaveConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultSaveConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *SaveCommandBuilder) resolveDocumentConfiguration() DocumentConfiguration {
	if builder.DocumentConfigurationProvider == nil {
		return DocumentConfiguration{}.sanitize()
	}
	return builder.DocumentConfigurationProvider().sanitize()
}
