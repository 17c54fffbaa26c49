package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultLogLevel",
			defaultChoice:  "warn",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "Log level.",
			expectedOutput: "`<debug|info|WARN|error>` Log level.",
		},
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "console",
			choices:        []string{"console", "structured"},
			description:    "Log format.",
			expectedOutput: "`<CONSOLE|structured>` Log format.",
		},
		{
			name:           "NoDefaultEmptyDescription",
			defaultChoice:  "",
			choices:        []string{"bash", "zsh", "fish", "powershell"},
			description:    "",
			expectedOutput: "`<bash|zsh|fish|powershell>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "zsh",
			choices:        []string{"zsh", "ZSH", "bash", "bash"},
			description:    "Shell.",
			expectedOutput: "`<ZSH|bash>` Shell.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "structured",
			choices:        []string{" console ", " structured "},
			description:    "Pick a format.",
			expectedOutput: "`<console|STRUCTURED>` Pick a format.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestParseChoice(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	parsed, parseError := ParseChoice(" ZSH ", shells)
	require.NoError(t, parseError)
	require.Equal(t, "zsh", parsed)

	_, parseError = ParseChoice("tcsh", shells)
	require.EqualError(t, parseError, `unsupported value "tcsh" (expected one of bash|zsh|fish|powershell)`)
}
