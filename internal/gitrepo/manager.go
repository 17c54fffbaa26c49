package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/gemote/internal/execshell"
	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	gitMetadataEntryNameConstant               = ".git"
	gitRevParseSubcommandConstant              = "rev-parse"
	gitShowTopLevelFlagConstant                = "--show-toplevel"
	gitIsBareRepositoryFlagConstant            = "--is-bare-repository"
	gitBareRepositoryTrueValueConstant         = "true"
	executorNotConfiguredMessageConstant       = "git executor not configured"
	repositoryNotFoundMessageConstant          = "not a git repository root"
	bareRepositoryMessageConstant              = "bare repositories have no working tree"
	repositoryPathRequiredMessageConstant      = "repository path is required"
	repositoryNotFoundErrorTemplateConstant    = "%w: %s"
	repositoryPathResolveErrorTemplateConstant = "unable to resolve repository path %s: %w"
	repositoryInspectErrorTemplateConstant     = "unable to inspect repository %s: %w"
)

var (
	// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrRepositoryNotFound indicates the path is not the root of a git working tree.
	ErrRepositoryNotFound = errors.New(repositoryNotFoundMessageConstant)
	// ErrBareRepository indicates the repository has no working tree.
	ErrBareRepository = errors.New(bareRepositoryMessageConstant)
	// ErrRepositoryPathRequired indicates an empty path was supplied.
	ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)
)

// RepositoryManager opens git repositories through a git executor.
type RepositoryManager struct {
	executor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsRepositoryRoot reports whether the directory contains a .git entry, either a directory or a gitdir file. Symlinks
// are followed, so a dangling .git link does not count.
func IsRepositoryRoot(directoryPath string) bool {
	_, statError := os.Stat(filepath.Join(directoryPath, gitMetadataEntryNameConstant))
	return statError == nil
}

// OpenRepository opens the repository whose working tree root is exactly repositoryPath.
func (manager *RepositoryManager) OpenRepository(executionContext context.Context, repositoryPath string) (shared.Repository, error) {
	repository, openError := manager.Open(executionContext, repositoryPath)
	if openError != nil {
		return nil, openError
	}
	return repository, nil
}

// Open is OpenRepository returning the concrete repository type.
func (manager *RepositoryManager) Open(executionContext context.Context, repositoryPath string) (*Repository, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return nil, ErrRepositoryPathRequired
	}

	absolutePath, absoluteError := filepath.Abs(trimmedPath)
	if absoluteError != nil {
		return nil, fmt.Errorf(repositoryPathResolveErrorTemplateConstant, trimmedPath, absoluteError)
	}

	if !IsRepositoryRoot(absolutePath) {
		return nil, fmt.Errorf(repositoryNotFoundErrorTemplateConstant, ErrRepositoryNotFound, absolutePath)
	}

	bare, bareError := manager.isBare(executionContext, absolutePath)
	if bareError != nil {
		return nil, fmt.Errorf(repositoryInspectErrorTemplateConstant, absolutePath, bareError)
	}
	if bare {
		return nil, fmt.Errorf(repositoryNotFoundErrorTemplateConstant, ErrBareRepository, absolutePath)
	}

	return &Repository{rootPath: absolutePath, executor: manager.executor}, nil
}

// LocateRepository implements shared.RepositoryLocator over DiscoverRepository.
func (manager *RepositoryManager) LocateRepository(executionContext context.Context, workingDirectory string) (shared.Repository, error) {
	repository, discoverError := manager.DiscoverRepository(executionContext, workingDirectory)
	if discoverError != nil {
		return nil, discoverError
	}
	return repository, nil
}

// DiscoverRepository locates the working tree enclosing workingDirectory, searching upward.
func (manager *RepositoryManager) DiscoverRepository(executionContext context.Context, workingDirectory string) (*Repository, error) {
	trimmedDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedDirectory) == 0 {
		return nil, ErrRepositoryPathRequired
	}

	absoluteDirectory, absoluteError := filepath.Abs(trimmedDirectory)
	if absoluteError != nil {
		return nil, fmt.Errorf(repositoryPathResolveErrorTemplateConstant, trimmedDirectory, absoluteError)
	}

	bare, bareError := manager.isBare(executionContext, absoluteDirectory)
	if bareError != nil {
		return nil, fmt.Errorf(repositoryNotFoundErrorTemplateConstant, ErrRepositoryNotFound, absoluteDirectory)
	}
	if bare {
		return nil, fmt.Errorf(repositoryNotFoundErrorTemplateConstant, ErrBareRepository, absoluteDirectory)
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowTopLevelFlagConstant},
		WorkingDirectory: absoluteDirectory,
	})
	if executionError != nil {
		return nil, fmt.Errorf(repositoryNotFoundErrorTemplateConstant, ErrRepositoryNotFound, absoluteDirectory)
	}

	topLevel := strings.TrimSpace(executionResult.StandardOutput)
	if len(topLevel) == 0 {
		return nil, fmt.Errorf(repositoryNotFoundErrorTemplateConstant, ErrRepositoryNotFound, absoluteDirectory)
	}

	return manager.Open(executionContext, filepath.FromSlash(topLevel))
}

func (manager *RepositoryManager) isBare(executionContext context.Context, directoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitIsBareRepositoryFlagConstant},
		WorkingDirectory: directoryPath,
	})
	if executionError != nil {
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitBareRepositoryTrueValueConstant, nil
}
