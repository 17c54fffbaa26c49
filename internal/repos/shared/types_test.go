package shared_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gemote/internal/repos/shared"
)

func TestRemoteStateEqual(testInstance *testing.T) {
	testCases := []struct {
		name     string
		left     shared.RemoteState
		right    shared.RemoteState
		expected bool
	}{
		{name: "identical", left: shared.RemoteState{URL: "a"}, right: shared.RemoteState{URL: "a"}, expected: true},
		{name: "different_url", left: shared.RemoteState{URL: "a"}, right: shared.RemoteState{URL: "b"}, expected: false},
		{name: "push_absent_versus_present", left: shared.RemoteState{URL: "a"}, right: shared.RemoteState{URL: "a", PushURL: "p"}, expected: false},
		{name: "identical_push", left: shared.RemoteState{URL: "a", PushURL: "p"}, right: shared.RemoteState{URL: "a", PushURL: "p"}, expected: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expected, testCase.left.Equal(testCase.right))
		})
	}
}

func TestNewRemoteStateTrimsURLs(testInstance *testing.T) {
	state := shared.NewRemoteState("  https://example.com/a.git ", " ")
	require.Equal(testInstance, "https://example.com/a.git", state.URL)
	require.False(testInstance, state.HasPushURL())
}

func TestParseExtraRemotePolicy(testInstance *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    shared.ExtraRemotePolicy
		expectError bool
	}{
		{name: "empty_defaults_to_ignore", input: "", expected: shared.ExtraRemotePolicyIgnore},
		{name: "ignore", input: "ignore", expected: shared.ExtraRemotePolicyIgnore},
		{name: "warn_mixed_case", input: " Warn ", expected: shared.ExtraRemotePolicyWarn},
		{name: "remove", input: "REMOVE", expected: shared.ExtraRemotePolicyRemove},
		{name: "unsupported", input: "delete", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			policy, parseError := shared.ParseExtraRemotePolicy(testCase.input)
			if testCase.expectError {
				require.Error(subtest, parseError)
				return
			}
			require.NoError(subtest, parseError)
			require.Equal(subtest, testCase.expected, policy)
		})
	}
}

func TestExtraRemotePolicyTextRoundTrip(testInstance *testing.T) {
	var policy shared.ExtraRemotePolicy
	require.NoError(testInstance, policy.UnmarshalText([]byte("Remove")))
	require.Equal(testInstance, shared.ExtraRemotePolicyRemove, policy)

	marshaled, marshalError := policy.MarshalText()
	require.NoError(testInstance, marshalError)
	require.Equal(testInstance, "remove", string(marshaled))

	var zeroPolicy shared.ExtraRemotePolicy
	require.Equal(testInstance, "ignore", zeroPolicy.String())
	require.Error(testInstance, policy.UnmarshalText([]byte("purge")))
}

func TestWriterDiagnosticReporterFormatsWarnings(testInstance *testing.T) {
	testCases := []struct {
		name       string
		diagnostic shared.Diagnostic
		expected   string
	}{
		{
			name:       "root_repository",
			diagnostic: shared.NewExtraRemoteDiagnostic("", "fork"),
			expected:   "warning: remote 'fork' exists locally but not in config\n",
		},
		{
			name:       "nested_repository",
			diagnostic: shared.NewRepositoryNotFoundDiagnostic("libs", "core"),
			expected:   "warning: [libs] sub-repository 'core' is configured but was not found\n",
		},
		{
			name:       "unavailable_submodule",
			diagnostic: shared.NewSubmoduleUnavailableDiagnostic("", "vendor/x", errors.New("boom")),
			expected:   "warning: submodule 'vendor/x' could not be opened: boom\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			outputBuffer := &bytes.Buffer{}
			reporter := shared.NewWriterDiagnosticReporter(outputBuffer)
			reporter.Report(testCase.diagnostic)
			require.Equal(subtest, testCase.expected, outputBuffer.String())
		})
	}
}

func TestMultiDiagnosticReporterFansOut(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	collector := &shared.CollectingDiagnosticReporter{}
	reporter := shared.NewMultiDiagnosticReporter(nil, collector, shared.NewLoggerDiagnosticReporter(zap.New(observedCore)))

	reporter.Report(shared.NewRepositoryNotConfiguredDiagnostic("", "tools"))

	require.Equal(testInstance, []shared.DiagnosticKind{shared.DiagnosticRepositoryNotConfigured}, collector.Kinds())
	entries := observedLogs.All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, "repository-not-configured", entries[0].ContextMap()["diagnostic_kind"])
	require.Equal(testInstance, "tools", entries[0].ContextMap()["subject"])
}

func TestWriterReporterPrintf(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reporter := shared.NewWriterReporter(outputBuffer)
	reporter.Printf("%s %d\n", "value", 7)
	require.Equal(testInstance, "value 7\n", outputBuffer.String())
}
