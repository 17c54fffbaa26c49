package remotes

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/repos/dependencies"
	"github.com/temirov/gemote/internal/repos/reconcile"
	remoteactions "github.com/temirov/gemote/internal/repos/remotes"
	"github.com/temirov/gemote/internal/repos/shared"
	flagutils "github.com/temirov/gemote/internal/utils/flags"
)

const (
	syncUseConstant                   = "sync"
	syncShortDescription              = "Sync local remotes to match the .gemote config"
	syncLongDescription               = "sync compares the remotes declared in the .gemote config with the repository's remotes, prints the difference, and applies it. With --recursive it also reconciles configured submodules and nested repositories."
	dryRunFooterConstant              = "\n(dry run — no changes applied)\n"
	syncCompleteFooterConstant        = "\nSync complete.\n"
	loadDocumentErrorTemplateConstant = "failed to load config from %s: %w"
	syncStartedMessageConstant        = "sync started"
	syncFinishedMessageConstant       = "sync finished"
	logFieldRepositoriesConstant      = "repositories_visited"
	logFieldActionsPlannedConstant    = "actions_planned"
	logFieldActionsAppliedConstant    = "actions_applied"
)

// SyncCommandBuilder assembles the sync command.
type SyncCommandBuilder struct {
	LoggerProvider                LoggerProvider
	HumanReadableLoggingProvider  func() bool
	ConfigurationProvider         func() SyncConfiguration
	DocumentConfigurationProvider func() DocumentConfiguration
	Collaborators                 Collaborators
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   syncUseConstant,
		Short: syncShortDescription,
		Long:  syncLongDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun:    flagutils.DefaultDryRunDefinition(),
		Recursive: flagutils.DefaultRecursiveDefinition(),
	})

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	executionFlags, executionFlagsAvailable := flagutils.ResolveExecutionFlags(command)

	dryRun := configuration.DryRun
	if executionFlagsAvailable && executionFlags.DryRunSet {
		dryRun = executionFlags.DryRun
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

	node, loadError := store.Load(resolvedTarget.documentPath)
	if loadError != nil {
		return fmt.Errorf(loadDocumentErrorTemplateConstant, resolvedTarget.documentPath, loadError)
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

	visitor, visitorError := reconcile.NewSyncVisitor(reconcile.SyncVisitorDependencies{
		Executor:    remoteactions.NewExecutor(logger),
		Reporter:    shared.NewWriterReporter(command.OutOrStdout()),
		Diagnostics: diagnostics,
	}, node, dryRun)
	if visitorError != nil {
		return visitorError
	}

	logger.Info(
		syncStartedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, resolvedTarget.repository.RootPath()),
		zap.String(logFieldDocumentPathConstant, resolvedTarget.documentPath),
		zap.Bool(logFieldDryRunConstant, dryRun),
		zap.Bool(logFieldRecursiveConstant, recursive),
	)

	if walkError := walker.Walk(executionContext, resolvedTarget.repository, visitor); walkError != nil {
		return walkError
	}

	summary := visitor.Summary()
	logger.Info(
		syncFinishedMessageConstant,
		zap.Int(logFieldRepositoriesConstant, summary.RepositoriesVisited),
		zap.Int(logFieldActionsPlannedConstant, summary.ActionsPlanned),
		zap.Int(logFieldActionsAppliedConstant, summary.ActionsApplied),
	)

	if summary.ActionsPlanned == 0 {
		return nil
	}
	if dryRun {
		fmt.Fprint(command.OutOrStdout(), dryRunFooterConstant)
		return nil
	}
	fmt.Fprint(command.OutOrStdout(), syncCompleteFooterConstant)
	return nil
}

func (builder *SyncCommandBuilder) resolveConfiguration() SyncConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultSyncConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *SyncCommandBuilder) resolveDocumentConfiguration() DocumentConfiguration {
	if builder.DocumentConfigurationProvider == nil {
		return DocumentConfiguration{}.sanitize()
	}
	return builder.DocumentConfigurationProvider().sanitize()
}
