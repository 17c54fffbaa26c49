package flags_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gemote/internal/utils/flags"
)

func TestBindExecutionFlagsRegistersEnabledDefinitions(testInstance *testing.T) {
	command := &cobra.Command{Use: "sync"}
	flags.BindExecutionFlags(command, flags.ExecutionDefaults{}, flags.ExecutionFlagDefinitions{
		DryRun:    flags.DefaultDryRunDefinition(),
		Recursive: flags.DefaultRecursiveDefinition(),
	})

	require.NotNil(testInstance, command.Flags().Lookup(flags.DryRunFlagName))
	require.NotNil(testInstance, command.Flags().ShorthandLookup(flags.RecursiveFlagShorthand))
	require.Nil(testInstance, command.Flags().Lookup(flags.ForceFlagName))
}

func TestResolveExecutionFlags(testInstance *testing.T) {
	testCases := []struct {
		name      string
		defaults  flags.ExecutionDefaults
		arguments []string
		expected  flags.ExecutionFlags
	}{
		{
			name:     "defaults_unchanged",
			defaults: flags.ExecutionDefaults{Recursive: true},
			expected: flags.ExecutionFlags{Recursive: true},
		},
		{
			name:      "explicit_values",
			arguments: []string{"--force", "-r", "--dry-run", "no"},
			expected:  flags.ExecutionFlags{DryRunSet: true, Recursive: true, RecursiveSet: true, Force: true, ForceSet: true},
		},
		{
			name:      "shorthand_disable",
			defaults:  flags.ExecutionDefaults{Force: true},
			arguments: []string{"-f=false"},
			expected:  flags.ExecutionFlags{ForceSet: true},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			command := &cobra.Command{Use: "save"}
			flags.BindExecutionFlags(command, testCase.defaults, flags.ExecutionFlagDefinitions{
				DryRun:    flags.DefaultDryRunDefinition(),
				Recursive: flags.DefaultRecursiveDefinition(),
				Force:     flags.DefaultForceDefinition(),
			})
			require.NoError(subTest, command.ParseFlags(flags.NormalizeToggleArguments(testCase.arguments)))

			resolved, available := flags.ResolveExecutionFlags(command)
			require.True(subTest, available)
			require.Equal(subTest, testCase.expected, resolved)
		})
	}
}

func TestResolveExecutionFlagsWithoutBindings(testInstance *testing.T) {
	resolved, available := flags.ResolveExecutionFlags(&cobra.Command{Use: "completions"})
	require.False(testInstance, available)
	require.Equal(testInstance, flags.ExecutionFlags{}, resolved)

	_, nilAvailable := flags.ResolveExecutionFlags(nil)
	require.False(testInstance, nilAvailable)
}
