package remotes_test

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/execshell"
	"github.com/temirov/gemote/internal/gitrepo"
	"github.com/temirov/gemote/internal/repos/shared"
	"github.com/temirov/gemote/internal/utils"
)

type memoryRepository struct {
	rootPath   string
	remotes    map[string]shared.RemoteState
	submodules []string
	mutations  []string
}

func newMemoryRepository(rootPath string, remotes map[string]shared.RemoteState) *memoryRepository {
	if remotes == nil {
		remotes = map[string]shared.RemoteState{}
	}
	return &memoryRepository{rootPath: rootPath, remotes: remotes}
}

func (repository *memoryRepository) RootPath() string {
	return repository.rootPath
}

func (repository *memoryRepository) ListRemotes(context.Context) (map[string]shared.RemoteState, error) {
	snapshot := make(map[string]shared.RemoteState, len(repository.remotes))
	for remoteName, state := range repository.remotes {
		snapshot[remoteName] = state
	}
	return snapshot, nil
}

func (repository *memoryRepository) ListSubmodules(context.Context) ([]string, error) {
	return append([]string(nil), repository.submodules...), nil
}

func (repository *memoryRepository) AddRemote(_ context.Context, remoteName string, fetchURL string, pushURL string) error {
	if _, exists := repository.remotes[remoteName]; exists {
		return fmt.Errorf("remote %s already exists", remoteName)
	}
	repository.mutations = append(repository.mutations, "add "+remoteName)
	repository.remotes[remoteName] = shared.RemoteState{URL: fetchURL, PushURL: pushURL}
	return nil
}

func (repository *memoryRepository) RemoveRemote(_ context.Context, remoteName string) error {
	repository.mutations = append(repository.mutations, "remove "+remoteName)
	delete(repository.remotes, remoteName)
	return nil
}

func (repository *memoryRepository) SetRemoteURL(_ context.Context, remoteName string, fetchURL string) error {
	repository.mutations = append(repository.mutations, "set-url "+remoteName)
	state := repository.remotes[remoteName]
	state.URL = fetchURL
	repository.remotes[remoteName] = state
	return nil
}

func (repository *memoryRepository) SetRemotePushURL(_ context.Context, remoteName string, pushURL string) error {
	repository.mutations = append(repository.mutations, "set-push-url "+remoteName)
	state := repository.remotes[remoteName]
	state.PushURL = pushURL
	repository.remotes[remoteName] = state
	return nil
}

type stubLocator struct {
	root         *memoryRepository
	repositories map[string]*memoryRepository
	locateCalls  []string
}

func newStubLocator(root *memoryRepository, children ...*memoryRepository) *stubLocator {
	locator := &stubLocator{root: root, repositories: map[string]*memoryRepository{}}
	for _, child := range children {
		locator.repositories[filepath.Clean(child.rootPath)] = child
	}
	return locator
}

func (locator *stubLocator) LocateRepository(_ context.Context, workingDirectory string) (shared.Repository, error) {
	locator.locateCalls = append(locator.locateCalls, workingDirectory)
	if locator.root == nil {
		return nil, gitrepo.ErrRepositoryNotFound
	}
	return locator.root, nil
}

func (locator *stubLocator) OpenRepository(_ context.Context, repositoryPath string) (shared.Repository, error) {
	repository, exists := locator.repositories[filepath.Clean(repositoryPath)]
	if !exists {
		return nil, gitrepo.ErrRepositoryNotFound
	}
	return repository, nil
}

type unusedGitExecutor struct{}

func (unusedGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, fmt.Errorf("git must not be invoked")
}

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

type commandRun struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	err    error
}

func executeCommand(testInstance *testing.T, builder commandBuilder, executionContext context.Context, arguments ...string) commandRun {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	run := commandRun{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	command.SetContext(executionContext)
	command.SetOut(run.stdout)
	command.SetErr(run.stderr)
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true
	run.err = command.Execute()
	return run
}

func nopLoggerProvider() *zap.Logger {
	return zap.NewNop()
}

func commandContextWithDocument(fixture syncFixture, documentPath string) context.Context {
	return utils.NewCommandContextAccessor().WithDocumentPath(fixture.context(), documentPath)
}
