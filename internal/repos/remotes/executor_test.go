package remotes_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gemote/internal/repos/remotes"
)

const executorRepositoryPath = "/tmp/project"

type recordingRemoteManager struct {
	calls    []string
	failures map[string]error
}

func (manager *recordingRemoteManager) RootPath() string {
	return executorRepositoryPath
}

func (manager *recordingRemoteManager) record(call string) error {
	manager.calls = append(manager.calls, call)
	if failure, exists := manager.failures[call]; exists {
		return failure
	}
	return nil
}

func (manager *recordingRemoteManager) AddRemote(_ context.Context, remoteName string, fetchURL string, pushURL string) error {
	return manager.record(fmt.Sprintf("add %s %s %s", remoteName, fetchURL, pushURL))
}

func (manager *recordingRemoteManager) RemoveRemote(_ context.Context, remoteName string) error {
	return manager.record("remove " + remoteName)
}

func (manager *recordingRemoteManager) SetRemoteURL(_ context.Context, remoteName string, fetchURL string) error {
	return manager.record(fmt.Sprintf("set-url %s %s", remoteName, fetchURL))
}

func (manager *recordingRemoteManager) SetRemotePushURL(_ context.Context, remoteName string, pushURL string) error {
	return manager.record(fmt.Sprintf("set-push-url %s %s", remoteName, pushURL))
}

func TestExecutorApplyRunsActionsInOrder(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	executor := remotes.NewExecutor(zap.New(observedCore))
	manager := &recordingRemoteManager{}

	actions := []remotes.Action{
		remotes.NewAddAction("origin", originFetchURL, originPushURL),
		remotes.NewUpdateURLAction("upstream", forkFetchURL, upstreamFetchURL),
		remotes.NewUpdatePushURLAction("upstream", originPushURL, ""),
		remotes.NewRemoveAction("fork"),
	}

	require.NoError(testInstance, executor.Apply(context.Background(), manager, actions))
	require.Equal(testInstance, []string{
		"add origin " + originFetchURL + " " + originPushURL,
		"set-url upstream " + upstreamFetchURL,
		"set-push-url upstream ",
		"remove fork",
	}, manager.calls)

	appliedEntries := observedLogs.FilterMessage("applied remote action").All()
	require.Len(testInstance, appliedEntries, len(actions))
	require.Equal(testInstance, executorRepositoryPath, appliedEntries[0].ContextMap()["repository_path"])
	require.Equal(testInstance, "remove", appliedEntries[3].ContextMap()["action"])
}

func TestExecutorApplyStopsAtFirstFailure(testInstance *testing.T) {
	failure := errors.New("remote already exists")
	manager := &recordingRemoteManager{failures: map[string]error{
		"add upstream " + upstreamFetchURL + " ": failure,
	}}
	actions := []remotes.Action{
		remotes.NewUpdateURLAction("origin", forkFetchURL, originFetchURL),
		remotes.NewAddAction("upstream", upstreamFetchURL, ""),
		remotes.NewRemoveAction("fork"),
	}

	applyError := remotes.NewExecutor(nil).Apply(context.Background(), manager, actions)
	require.Error(testInstance, applyError)
	require.ErrorIs(testInstance, applyError, failure)

	var typedError *remotes.ApplyError
	require.True(testInstance, errors.As(applyError, &typedError))
	require.Equal(testInstance, 1, typedError.Index)
	require.Equal(testInstance, actions[1], typedError.Action)
	require.Equal(testInstance, executorRepositoryPath, typedError.RepositoryPath)
	require.Contains(testInstance, applyError.Error(), "add remote upstream")

	require.Equal(testInstance, []string{
		"set-url origin " + originFetchURL,
		"add upstream " + upstreamFetchURL + " ",
	}, manager.calls)
}

func TestExecutorApplyWithoutActionsDoesNothing(testInstance *testing.T) {
	manager := &recordingRemoteManager{}
	require.NoError(testInstance, remotes.NewExecutor(nil).Apply(context.Background(), manager, nil))
	require.Empty(testInstance, manager.calls)
}
