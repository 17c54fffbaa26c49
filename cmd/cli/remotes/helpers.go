package remotes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/repos/dependencies"
	"github.com/temirov/gemote/internal/repos/reconcile"
	"github.com/temirov/gemote/internal/repos/shared"
	"github.com/temirov/gemote/internal/utils"
)

const (
	openRepositoryErrorTemplateConstant   = "could not open git repository: %w"
	workingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	targetResolvedMessageConstant         = "resolved target repository"
	logFieldRepositoryRootConstant        = "repository_root"
	logFieldDocumentPathConstant          = "document_path"
	logFieldRecursiveConstant             = "recursive"
	logFieldDryRunConstant                = "dry_run"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// Collaborators groups the injectable dependencies shared by the sync and save commands.
// Nil fields are replaced with git- and OS-backed defaults.
type Collaborators struct {
	GitExecutor       shared.GitExecutor
	RepositoryLocator shared.RepositoryLocator
	FileSystem        shared.FileSystem
}

// target is the repository and document a command operates on.
type target struct {
	repository   shared.Repository
	locator      shared.RepositoryLocator
	documentPath string
}

var commandContextAccessor = utils.NewCommandContextAccessor()

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func humanReadableLogging(provider func() bool) bool {
	if provider == nil {
		return false
	}
	return provider()
}

// resolveTarget locates the repository enclosing --repo (or the working directory) and the document path:
// --config when given, otherwise the configured file name at the repository root.
func resolveTarget(executionContext context.Context, collaborators Collaborators, documentConfiguration DocumentConfiguration, logger *zap.Logger, humanReadable bool) (target, error) {
	gitExecutor, executorError := dependencies.ResolveGitExecutor(collaborators.GitExecutor, logger, humanReadable)
	if executorError != nil {
		return target{}, executorError
	}

	locator, locatorError := dependencies.ResolveRepositoryLocator(collaborators.RepositoryLocator, gitExecutor)
	if locatorError != nil {
		return target{}, locatorError
	}

	startDirectory, startAvailable := commandContextAccessor.RepositoryPath(executionContext)
	if !startAvailable {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return target{}, fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		startDirectory = workingDirectory
	}

	repository, locateError := locator.LocateRepository(executionContext, startDirectory)
	if locateError != nil {
		return target{}, fmt.Errorf(openRepositoryErrorTemplateConstant, locateError)
	}

	documentPath, documentAvailable := commandContextAccessor.DocumentPath(executionContext)
	if !documentAvailable {
		documentPath = filepath.Join(repository.RootPath(), documentConfiguration.sanitize().FileName)
	}

	logger.Debug(
		targetResolvedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, repository.RootPath()),
		zap.String(logFieldDocumentPathConstant, documentPath),
	)

	return target{repository: repository, locator: locator, documentPath: documentPath}, nil
}

// newWalkerDiscoverer returns a discoverer only in recursive mode so the walker never sees a typed nil.
func newWalkerDiscoverer(recursive bool, opener shared.RepositoryOpener, diagnostics shared.DiagnosticReporter, logger *zap.Logger) (reconcile.ChildDiscoverer, error) {
	if !recursive {
		return nil, nil
	}
	discoverer, discovererError := dependencies.ResolveDiscoverer(opener, diagnostics, logger)
	if discovererError != nil {
		return nil, discovererError
	}
	return discoverer, nil
}

func newDiagnosticReporter(command *cobra.Command, logger *zap.Logger) shared.DiagnosticReporter {
	return shared.NewMultiDiagnosticReporter(
		shared.NewWriterDiagnosticReporter(command.ErrOrStderr()),
		shared.NewLoggerDiagnosticReporter(logger),
	)
}
