package shared

import (
	"context"
	"io/fs"
	"strings"

	"github.com/temirov/gemote/internal/execshell"
)

// RemoteState is the declared or observed identity of a single remote.
// An empty PushURL means the remote has no distinct push URL.
type RemoteState struct {
	URL     string `toml:"url" yaml:"url"`
	PushURL string `toml:"push_url,omitempty" yaml:"push_url,omitempty"`
}

// NewRemoteState trims both URLs and returns the resulting state.
func NewRemoteState(fetchURL string, pushURL string) RemoteState {
	return RemoteState{URL: strings.TrimSpace(fetchURL), PushURL: strings.TrimSpace(pushURL)}
}

// HasPushURL reports whether a push URL is present.
func (state RemoteState) HasPushURL() bool {
	return len(state.PushURL) > 0
}

// Equal reports whether both URLs match exactly.
func (state RemoteState) Equal(other RemoteState) bool {
	return state.URL == other.URL && state.PushURL == other.PushURL
}

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RemoteManager mutates the remote set of a single repository.
type RemoteManager interface {
	AddRemote(executionContext context.Context, remoteName string, fetchURL string, pushURL string) error
	RemoveRemote(executionContext context.Context, remoteName string) error
	SetRemoteURL(executionContext context.Context, remoteName string, fetchURL string) error
	SetRemotePushURL(executionContext context.Context, remoteName string, pushURL string) error
}

// Repository exposes the repository capabilities required by reconciliation and discovery.
type Repository interface {
	RemoteManager
	RootPath() string
	ListRemotes(executionContext context.Context) (map[string]RemoteState, error)
	ListSubmodules(executionContext context.Context) ([]string, error)
}

// RepositoryOpener opens repositories rooted exactly at a filesystem path.
type RepositoryOpener interface {
	OpenRepository(executionContext context.Context, repositoryPath string) (Repository, error)
}

// RepositoryLocator finds the repository whose working tree encloses a directory.
type RepositoryLocator interface {
	RepositoryOpener
	LocateRepository(executionContext context.Context, workingDirectory string) (Repository, error)
}

// FileSystem exposes the filesystem operations used by configuration storage.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}
