package remotes

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	applyErrorTemplateConstant         = "%s: action %d (%s) failed: %v"
	applyErrorWithoutPathTemplate      = "action %d (%s) failed: %v"
	applyingActionMessageConstant      = "applying remote action"
	appliedActionMessageConstant       = "applied remote action"
	applyFailedMessageConstant         = "remote action failed"
	logFieldRepositoryPathConstant     = "repository_path"
	logFieldRemoteNameConstant         = "remote_name"
	logFieldActionConstant             = "action"
	logFieldActionIndexConstant        = "action_index"
	unsupportedActionKindErrorTemplate = "unsupported action kind %q"
)

// ApplyError reports the first action that failed during Apply. Actions before Index remain applied.
type ApplyError struct {
	Index          int
	Action         Action
	RepositoryPath string
	Err            error
}

// Error describes the failed action.
func (applyError *ApplyError) Error() string {
	if len(applyError.RepositoryPath) == 0 {
		return fmt.Sprintf(applyErrorWithoutPathTemplate, applyError.Index, applyError.Action, applyError.Err)
	}
	return fmt.Sprintf(applyErrorTemplateConstant, applyError.RepositoryPath, applyError.Index, applyError.Action, applyError.Err)
}

// Unwrap exposes the underlying cause.
func (applyError *ApplyError) Unwrap() error {
	return applyError.Err
}

type rootPathProvider interface {
	RootPath() string
}

// Executor applies planned actions to a repository.
type Executor struct {
	logger *zap.Logger
}

// NewExecutor constructs an Executor that logs every applied action.
func NewExecutor(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{logger: logger}
}

// Apply performs the actions strictly in order and stops at the first failure. Nothing is rolled back.
func (executor *Executor) Apply(executionContext context.Context, repository shared.RemoteManager, actions []Action) error {
	repositoryPath := ""
	if provider, ok := repository.(rootPathProvider); ok {
		repositoryPath = provider.RootPath()
	}

	for actionIndex, action := range actions {
		actionFields := []zap.Field{
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldRemoteNameConstant, action.Name),
			zap.String(logFieldActionConstant, string(action.Kind)),
			zap.Int(logFieldActionIndexConstant, actionIndex),
		}
		executor.logger.Debug(applyingActionMessageConstant, actionFields...)

		if actionError := applyAction(executionContext, repository, action); actionError != nil {
			executor.logger.Debug(applyFailedMessageConstant, append(actionFields, zap.Error(actionError))...)
			return &ApplyError{Index: actionIndex, Action: action, RepositoryPath: repositoryPath, Err: actionError}
		}

		executor.logger.Debug(appliedActionMessageConstant, actionFields...)
	}
	return nil
}

func applyAction(executionContext context.Context, repository shared.RemoteManager, action Action) error {
	switch action.Kind {
	case ActionAdd:
		return repository.AddRemote(executionContext, action.Name, action.URL, action.PushURL)
	case ActionUpdateURL:
		return repository.SetRemoteURL(executionContext, action.Name, action.NewURL)
	case ActionUpdatePushURL:
		return repository.SetRemotePushURL(executionContext, action.Name, action.NewPushURL)
	case ActionRemove:
		return repository.RemoveRemote(executionContext, action.Name)
	default:
		return fmt.Errorf(unsupportedActionKindErrorTemplate, action.Kind)
	}
}
