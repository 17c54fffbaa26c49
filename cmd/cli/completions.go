package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	flagutils "github.com/temirov/gemote/internal/utils/flags"
)

const (
	completionsUseConstant              = "completions <bash|zsh|fish|powershell>"
	completionsShortDescription         = "Generate shell completions"
	completionsLongDescription          = "completions writes a completion script for the requested shell to standard output."
	completionsShellErrorTemplate       = "invalid shell: %w"
	completionsUnsupportedShellTemplate = "unsupported shell %q"
	shellBashConstant                   = "bash"
	shellZshConstant                    = "zsh"
	shellFishConstant                   = "fish"
	shellPowerShellConstant             = "powershell"
)

var supportedShells = []string{shellBashConstant, shellZshConstant, shellFishConstant, shellPowerShellConstant}

// CompletionsCommandBuilder assembles the completions command.
type CompletionsCommandBuilder struct{}

// Build constructs the completions command.
func (builder *CompletionsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:       completionsUseConstant,
		Short:     completionsShortDescription,
		Long:      completionsLongDescription,
		Args:      cobra.ExactArgs(1),
		ValidArgs: supportedShells,
		RunE:      builder.run,
	}
	return command, nil
}

func (builder *CompletionsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	shell, shellError := flagutils.ParseChoice(arguments[0], supportedShells)
	if shellError != nil {
		return fmt.Errorf(completionsShellErrorTemplate, shellError)
	}

	rootCommand := command.Root()
	output := command.OutOrStdout()
	switch shell {
	case shellBashConstant:
		return rootCommand.GenBashCompletionV2(output, true)
	case shellZshConstant:
		return rootCommand.GenZshCompletion(output)
	case shellFishConstant:
		return rootCommand.GenFishCompletion(output, true)
	case shellPowerShellConstant:
		return rootCommand.GenPowerShellCompletionWithDesc(output)
	default:
		return fmt.Errorf(completionsUnsupportedShellTemplate, shell)
	}
}
