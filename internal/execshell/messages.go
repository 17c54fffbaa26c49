package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant     = "rev-parse"
	gitShowToplevelFlagConstant           = "--show-toplevel"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteAddSubcommandNameConstant    = "add"
	gitRemoteRemoveSubcommandNameConstant = "remove"
	gitRemoteSetURLSubcommandNameConstant = "set-url"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
	gitPushFlagConstant                   = "--push"
	gitConfigSubcommandNameConstant       = "config"
	gitGetRegexpFlagConstant              = "--get-regexp"
	gitUnsetAllFlagConstant               = "--unset-all"
)

const (
	gitToplevelStartTemplateConstant              = "Locating repository root from %s"
	gitToplevelSuccessTemplateConstant            = "Repository root for %s is %s"
	gitToplevelFailureTemplateConstant            = "Could not locate a repository from %s (exit code %d%s)"
	gitToplevelExecutionFailureTemplateConstant   = "Unable to locate a repository from %s: %s"
	gitRemoteListStartTemplateConstant            = "Listing remotes in %s"
	gitRemoteListSuccessTemplateConstant          = "Listed remotes in %s"
	gitRemoteListFailureTemplateConstant          = "Failed to list remotes in %s (exit code %d%s)"
	gitRemoteListExecutionFailureTemplateConstant = "Unable to list remotes in %s: %s"
	gitRemoteAddStartTemplateConstant             = "Adding %s remote (%s) in %s"
	gitRemoteAddSuccessTemplateConstant           = "Added %s remote in %s"
	gitRemoteAddFailureTemplateConstant           = "Failed to add %s remote in %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant  = "Unable to add %s remote in %s: %s"
	gitRemoteRemoveStartTemplateConstant          = "Removing %s remote in %s"
	gitRemoteRemoveSuccessTemplateConstant        = "Removed %s remote in %s"
	gitRemoteRemoveFailureTemplateConstant        = "Failed to remove %s remote in %s (exit code %d%s)"
	gitRemoteRemoveExecutionFailureTemplate       = "Unable to remove %s remote in %s: %s"
	gitRemoteUpdateStartTemplateConstant          = "Updating %s %s for %s to %s"
	gitRemoteUpdateSuccessTemplateConstant        = "%s %s for %s now points to %s"
	gitRemoteUpdateFailureTemplateConstant        = "Failed to update %s %s for %s to %s (exit code %d%s)"
	gitRemoteUpdateExecutionFailureTemplate       = "Unable to update %s %s for %s to %s: %s"
	gitRemoteLookupStartTemplateConstant          = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant        = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant        = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplate       = "Unable to read %s remote for %s: %s"
	gitConfigReadStartTemplateConstant            = "Reading %s settings in %s"
	gitConfigReadSuccessTemplateConstant          = "Read %s settings in %s"
	gitConfigReadFailureTemplateConstant          = "No %s settings read in %s (exit code %d%s)"
	gitConfigReadExecutionFailureTemplate         = "Unable to read %s settings in %s: %s"
	gitConfigUnsetStartTemplateConstant           = "Clearing %s in %s"
	gitConfigUnsetSuccessTemplateConstant         = "Cleared %s in %s"
	gitConfigUnsetFailureTemplateConstant         = "Failed to clear %s in %s (exit code %d%s)"
	gitConfigUnsetExecutionFailureTemplate        = "Unable to clear %s in %s: %s"
	gitRemoteURLLabelConstant                     = "url"
	gitRemotePushURLLabelConstant                 = "push url"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case gitRevParseSubcommandNameConstant:
		if containsArgument(command.Details.Arguments, gitShowToplevelFlagConstant) {
			return formatter.describeGitToplevelMessage(command, result, failure, stage)
		}
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitToplevelMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitToplevelStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitToplevelSuccessTemplateConstant, workingDirectory, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitToplevelFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitToplevelExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(arguments) == 1 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteListStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteListSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteListFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteListExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	positional := formatter.positionalArguments(arguments[1:])
	if len(positional) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(positional, 1))

	switch positional[0] {
	case gitRemoteAddSubcommandNameConstant:
		remoteURL := formatter.ensureValue(formatter.argumentAtIndex(positional, 2))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, remoteURL, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteRemoveSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteRemoveStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteRemoveSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteRemoveFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteRemoveExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteSetURLSubcommandNameConstant:
		urlLabel := gitRemoteURLLabelConstant
		if containsArgument(arguments, gitPushFlagConstant) {
			urlLabel = gitRemotePushURLLabelConstant
		}
		targetURL := formatter.ensureValue(formatter.argumentAtIndex(positional, 2))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteUpdateStartTemplateConstant, remoteName, urlLabel, workingDirectory, targetURL)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteUpdateSuccessTemplateConstant, remoteName, urlLabel, workingDirectory, targetURL)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteUpdateFailureTemplateConstant, remoteName, urlLabel, workingDirectory, targetURL, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteUpdateExecutionFailureTemplate, remoteName, urlLabel, workingDirectory, targetURL, formatter.describeFailure(failure))
		}
	case gitRemoteGetURLSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if pattern := findFlagValue(arguments, gitGetRegexpFlagConstant); len(pattern) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitConfigReadStartTemplateConstant, pattern, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitConfigReadSuccessTemplateConstant, pattern, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitConfigReadFailureTemplateConstant, pattern, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitConfigReadExecutionFailureTemplate, pattern, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if key := findFlagValue(arguments, gitUnsetAllFlagConstant); len(key) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitConfigUnsetStartTemplateConstant, key, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitConfigUnsetSuccessTemplateConstant, key, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitConfigUnsetFailureTemplateConstant, key, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitConfigUnsetExecutionFailureTemplate, key, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		if strings.HasPrefix(argument, "-") {
			continue
		}
		positional = append(positional, argument)
	}
	return positional
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}
