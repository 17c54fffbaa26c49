package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
)

const (
	environmentAssignmentSeparatorConstant = "="
	terminalPromptVariableConstant         = "GIT_TERMINAL_PROMPT"
	localeVariableConstant                 = "LC_ALL"
	disabledValueConstant                  = "0"
	stableLocaleValueConstant              = "C"
)

// OSCommandRunner executes commands using os/exec.
type OSCommandRunner struct {
	baseEnvironment func() []string
}

// NewOSCommandRunner constructs a runner inheriting the process environment.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{baseEnvironment: os.Environ}
}

// Run executes the command and reports non-zero exits through the result rather than an error.
// Git never prompts for credentials and always prints in the C locale so its output stays parseable.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), append([]string(nil), command.Details.Arguments...)...)
	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}
	executable.Env = runner.environmentFor(command)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	result := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	return ExecutionResult{}, runError
}

func (runner *OSCommandRunner) environmentFor(command ShellCommand) []string {
	overrides := map[string]string{}
	if command.Name == CommandGit {
		overrides[terminalPromptVariableConstant] = disabledValueConstant
		overrides[localeVariableConstant] = stableLocaleValueConstant
	}
	for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
		overrides[environmentKey] = environmentValue
	}

	baseEnvironment := os.Environ
	if runner.baseEnvironment != nil {
		baseEnvironment = runner.baseEnvironment
	}
	environment := append([]string(nil), baseEnvironment()...)
	if len(overrides) == 0 {
		return environment
	}

	overrideKeys := make([]string, 0, len(overrides))
	for environmentKey := range overrides {
		overrideKeys = append(overrideKeys, environmentKey)
	}
	sort.Strings(overrideKeys)
	for _, environmentKey := range overrideKeys {
		environment = append(environment, environmentKey+environmentAssignmentSeparatorConstant+overrides[environmentKey])
	}
	return environment
}
