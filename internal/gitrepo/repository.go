package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/temirov/gemote/internal/execshell"
	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	gitRemoteSubcommandConstant           = "remote"
	gitRemoteAddSubcommandConstant        = "add"
	gitRemoteRemoveSubcommandConstant     = "remove"
	gitRemoteSetURLSubcommandConstant     = "set-url"
	gitRemoteGetURLSubcommandConstant     = "get-url"
	gitPushFlagConstant                   = "--push"
	gitConfigSubcommandConstant           = "config"
	gitConfigGetRegexpFlagConstant        = "--get-regexp"
	gitConfigUnsetAllFlagConstant         = "--unset-all"
	gitConfigFileFlagConstant             = "--file"
	remoteURLKeyPatternConstant           = `^remote\..*\.(url|pushurl)$`
	submodulePathKeyPatternConstant       = `^submodule\..*\.path$`
	remoteKeyPrefixConstant               = "remote."
	remoteURLKeySuffixConstant            = ".url"
	remotePushURLKeySuffixConstant        = ".pushurl"
	remotePushURLKeyTemplateConstant      = "remote.%s.pushurl"
	gitModulesFileNameConstant            = ".gitmodules"
	configNoMatchExitCodeConstant         = 1
	configNothingToUnsetExitCodeConstant  = 5
	remoteNameRequiredMessageConstant     = "remote name is required"
	remoteURLRequiredMessageConstant      = "remote url is required"
	listRemotesErrorTemplateConstant      = "unable to list remotes in %s: %w"
	readRemoteURLsErrorTemplateConstant   = "unable to read remote urls in %s: %w"
	addRemoteErrorTemplateConstant        = "unable to add remote %s in %s: %w"
	removeRemoteErrorTemplateConstant     = "unable to remove remote %s in %s: %w"
	setRemoteURLErrorTemplateConstant     = "unable to set url of remote %s in %s: %w"
	setRemotePushURLErrorTemplateConstant = "unable to set push url of remote %s in %s: %w"
	listSubmodulesErrorTemplateConstant   = "unable to list submodules in %s: %w"
)

var (
	// ErrRemoteNameRequired indicates an empty remote name was supplied.
	ErrRemoteNameRequired = errors.New(remoteNameRequiredMessageConstant)
	// ErrRemoteURLRequired indicates an empty fetch URL was supplied.
	ErrRemoteURLRequired = errors.New(remoteURLRequiredMessageConstant)
)

// Repository is an opened git working tree.
type Repository struct {
	rootPath string
	executor shared.GitExecutor
}

// RootPath returns the absolute working tree root.
func (repository *Repository) RootPath() string {
	return repository.rootPath
}

// ListRemotes returns every configured remote with its fetch URL and optional push URL.
func (repository *Repository) ListRemotes(executionContext context.Context) (map[string]shared.RemoteState, error) {
	namesResult, namesError := repository.git(executionContext, gitRemoteSubcommandConstant)
	if namesError != nil {
		return nil, fmt.Errorf(listRemotesErrorTemplateConstant, repository.rootPath, namesError)
	}

	remotes := make(map[string]shared.RemoteState)
	for _, line := range strings.Split(namesResult.StandardOutput, "\n") {
		remoteName := strings.TrimSpace(line)
		if len(remoteName) == 0 {
			continue
		}
		remotes[remoteName] = shared.RemoteState{}
	}
	if len(remotes) == 0 {
		return remotes, nil
	}

	urlResult, urlError := repository.git(executionContext, gitConfigSubcommandConstant, gitConfigGetRegexpFlagConstant, remoteURLKeyPatternConstant)
	if urlError != nil {
		if exitCode, failed := execshell.ExitCodeOf(urlError); failed && exitCode == configNoMatchExitCodeConstant {
			return remotes, nil
		}
		return nil, fmt.Errorf(readRemoteURLsErrorTemplateConstant, repository.rootPath, urlError)
	}

	fetchSeen := make(map[string]bool)
	pushSeen := make(map[string]bool)
	for _, entry := range parseConfigEntries(urlResult.StandardOutput) {
		if !strings.HasPrefix(entry.key, remoteKeyPrefixConstant) {
			continue
		}
		qualifiedKey := strings.TrimPrefix(entry.key, remoteKeyPrefixConstant)
		switch {
		case strings.HasSuffix(qualifiedKey, remotePushURLKeySuffixConstant):
			remoteName := strings.TrimSuffix(qualifiedKey, remotePushURLKeySuffixConstant)
			state, known := remotes[remoteName]
			if !known || pushSeen[remoteName] {
				continue
			}
			pushSeen[remoteName] = true
			state.PushURL = entry.value
			remotes[remoteName] = state
		case strings.HasSuffix(qualifiedKey, remoteURLKeySuffixConstant):
			remoteName := strings.TrimSuffix(qualifiedKey, remoteURLKeySuffixConstant)
			state, known := remotes[remoteName]
			if !known || fetchSeen[remoteName] {
				continue
			}
			fetchSeen[remoteName] = true
			state.URL = entry.value
			remotes[remoteName] = state
		}
	}

	return remotes, nil
}

// AddRemote creates a remote and sets its push URL when one is provided. It fails when the remote already exists.
func (repository *Repository) AddRemote(executionContext context.Context, remoteName string, fetchURL string, pushURL string) error {
	if err := validateRemoteArguments(remoteName, fetchURL); err != nil {
		return err
	}
	if _, err := repository.git(executionContext, gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, remoteName, fetchURL); err != nil {
		return fmt.Errorf(addRemoteErrorTemplateConstant, remoteName, repository.rootPath, err)
	}
	if len(pushURL) == 0 {
		return nil
	}
	return repository.SetRemotePushURL(executionContext, remoteName, pushURL)
}

// RemoveRemote deletes a remote. It fails when the remote does not exist.
func (repository *Repository) RemoveRemote(executionContext context.Context, remoteName string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return ErrRemoteNameRequired
	}
	if _, err := repository.git(executionContext, gitRemoteSubcommandConstant, gitRemoteRemoveSubcommandConstant, remoteName); err != nil {
		return fmt.Errorf(removeRemoteErrorTemplateConstant, remoteName, repository.rootPath, err)
	}
	return nil
}

// SetRemoteURL replaces the fetch URL of an existing remote.
func (repository *Repository) SetRemoteURL(executionContext context.Context, remoteName string, fetchURL string) error {
	if err := validateRemoteArguments(remoteName, fetchURL); err != nil {
		return err
	}
	if _, err := repository.git(executionContext, gitRemoteSubcommandConstant, gitRemoteSetURLSubcommandConstant, remoteName, fetchURL); err != nil {
		return fmt.Errorf(setRemoteURLErrorTemplateConstant, remoteName, repository.rootPath, err)
	}
	return nil
}

// SetRemotePushURL sets the push URL of an existing remote, or clears it when pushURL is empty.
func (repository *Repository) SetRemotePushURL(executionContext context.Context, remoteName string, pushURL string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return ErrRemoteNameRequired
	}

	if len(pushURL) > 0 {
		if _, err := repository.git(executionContext, gitRemoteSubcommandConstant, gitRemoteSetURLSubcommandConstant, gitPushFlagConstant, remoteName, pushURL); err != nil {
			return fmt.Errorf(setRemotePushURLErrorTemplateConstant, remoteName, repository.rootPath, err)
		}
		return nil
	}

	_, unsetError := repository.git(executionContext, gitConfigSubcommandConstant, gitConfigUnsetAllFlagConstant, fmt.Sprintf(remotePushURLKeyTemplateConstant, remoteName))
	if unsetError == nil {
		return nil
	}
	if exitCode, failed := execshell.ExitCodeOf(unsetError); !failed || exitCode != configNothingToUnsetExitCodeConstant {
		return fmt.Errorf(setRemotePushURLErrorTemplateConstant, remoteName, repository.rootPath, unsetError)
	}
	if _, lookupError := repository.git(executionContext, gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName); lookupError != nil {
		return fmt.Errorf(setRemotePushURLErrorTemplateConstant, remoteName, repository.rootPath, lookupError)
	}
	return nil
}

// ListSubmodules returns the slash-separated paths registered in .gitmodules, in file order.
func (repository *Repository) ListSubmodules(executionContext context.Context) ([]string, error) {
	modulesPath := filepath.Join(repository.rootPath, gitModulesFileNameConstant)
	if _, statError := os.Stat(modulesPath); statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(listSubmodulesErrorTemplateConstant, repository.rootPath, statError)
	}

	executionResult, executionError := repository.git(executionContext, gitConfigSubcommandConstant, gitConfigFileFlagConstant, modulesPath, gitConfigGetRegexpFlagConstant, submodulePathKeyPatternConstant)
	if executionError != nil {
		if exitCode, failed := execshell.ExitCodeOf(executionError); failed && exitCode == configNoMatchExitCodeConstant {
			return nil, nil
		}
		return nil, fmt.Errorf(listSubmodulesErrorTemplateConstant, repository.rootPath, executionError)
	}

	var submodulePaths []string
	for _, entry := range parseConfigEntries(executionResult.StandardOutput) {
		if len(entry.value) == 0 {
			continue
		}
		submodulePaths = append(submodulePaths, path.Clean(filepath.ToSlash(entry.value)))
	}
	return submodulePaths, nil
}

func (repository *Repository) git(executionContext context.Context, arguments ...string) (execshell.ExecutionResult, error) {
	return repository.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repository.rootPath,
	})
}

type configEntry struct {
	key   string
	value string
}

func parseConfigEntries(output string) []configEntry {
	var entries []configEntry
	for _, line := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		key, value, _ := strings.Cut(trimmedLine, " ")
		entries = append(entries, configEntry{key: key, value: strings.TrimSpace(value)})
	}
	return entries
}

func validateRemoteArguments(remoteName string, fetchURL string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return ErrRemoteNameRequired
	}
	if len(strings.TrimSpace(fetchURL)) == 0 {
		return ErrRemoteURLRequired
	}
	return nil
}
