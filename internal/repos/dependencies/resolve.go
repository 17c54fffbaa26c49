package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/execshell"
	"github.com/temirov/gemote/internal/gitrepo"
	"github.com/temirov/gemote/internal/remoteconfig"
	"github.com/temirov/gemote/internal/repos/discovery"
	"github.com/temirov/gemote/internal/repos/filesystem"
	"github.com/temirov/gemote/internal/repos/shared"
	"github.com/temirov/gemote/internal/ui"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging attaches a console observer that narrates each git invocation.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	var observer execshell.CommandEventObserver
	if humanReadableLogging {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryLocator returns the provided locator or constructs a git-backed repository manager.
func ResolveRepositoryLocator(existing shared.RepositoryLocator, executor shared.GitExecutor) (shared.RepositoryLocator, error) {
	if existing != nil {
		return existing, nil
	}
	repositoryManager, creationError := gitrepo.NewRepositoryManager(executor)
	if creationError != nil {
		return nil, creationError
	}
	return repositoryManager, nil
}

// ResolveDiscoverer builds the sub-repository discoverer over the repository opener.
func ResolveDiscoverer(opener shared.RepositoryOpener, diagnostics shared.DiagnosticReporter, logger *zap.Logger) (*discovery.Discoverer, error) {
	return discovery.NewDiscoverer(opener, diagnostics, logger)
}

// ResolveConfigurationStore builds the .gemote document store over the filesystem.
func ResolveConfigurationStore(fileSystem shared.FileSystem) (*remoteconfig.Store, error) {
	return remoteconfig.NewStore(ResolveFileSystem(fileSystem))
}
