package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gemote/internal/execshell"
	"github.com/temirov/gemote/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant    = "/tmp/project"
	testRemoteURLConstant                  = "https://example.com/repo.git"
	testExecutionFailureReasonConstant     = "execution failed"
	testStandardErrorMessageConstant       = "error: remote origin already exists."
	testStartMessageExpectationConstant    = "Adding origin remote (" + testRemoteURLConstant + ") in " + testCommandWorkingDirectoryConstant
	testSuccessMessageExpectationConstant  = "Added origin remote in " + testCommandWorkingDirectoryConstant
	testFailureMessageExpectationConstant  = "Failed to add origin remote in " + testCommandWorkingDirectoryConstant + " (exit code 3: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to add origin remote in " + testCommandWorkingDirectoryConstant + ": " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"remote", "add", "origin", testRemoteURLConstant},
			WorkingDirectory: testCommandWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 3, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))

			testCase.invoke(consoleLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestConsoleCommandEventLoggerToleratesNilReceiver(testInstance *testing.T) {
	var consoleLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		consoleLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
	})
}
