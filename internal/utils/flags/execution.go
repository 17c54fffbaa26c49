// Package flags provides helpers for binding gemote's shared flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Show what would change without applying"
	// RecursiveFlagName exposes the shared recursive flag name.
	RecursiveFlagName = "recursive"
	// RecursiveFlagShorthand provides the shorthand for the recursive flag.
	RecursiveFlagShorthand = "r"
	// RecursiveFlagUsage describes the shared recursive flag purpose.
	RecursiveFlagUsage = "Descend into submodules and nested repositories"
	// ForceFlagName exposes the shared force flag name.
	ForceFlagName = "force"
	// ForceFlagShorthand provides the shorthand for the force flag.
	ForceFlagShorthand = "f"
	// ForceFlagUsage describes the shared force flag purpose.
	ForceFlagUsage = "Overwrite an existing config file"
)

// ExecutionDefaults describes default flag values, normally taken from application settings.
type ExecutionDefaults struct {
	DryRun    bool
	Recursive bool
	Force     bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun    ExecutionFlagDefinition
	Recursive ExecutionFlagDefinition
	Force     ExecutionFlagDefinition
}

// DefaultDryRunDefinition is the standard --dry-run definition.
func DefaultDryRunDefinition() ExecutionFlagDefinition {
	return ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true}
}

// DefaultRecursiveDefinition is the standard -r/--recursive definition.
func DefaultRecursiveDefinition() ExecutionFlagDefinition {
	return ExecutionFlagDefinition{Name: RecursiveFlagName, Usage: RecursiveFlagUsage, Shorthand: RecursiveFlagShorthand, Enabled: true}
}

// DefaultForceDefinition is the standard -f/--force definition.
func DefaultForceDefinition() ExecutionFlagDefinition {
	return ExecutionFlagDefinition{Name: ForceFlagName, Usage: ForceFlagUsage, Shorthand: ForceFlagShorthand, Enabled: true}
}

// ExecutionFlags reports the parsed execution flag values and whether each was given explicitly.
type ExecutionFlags struct {
	DryRun       bool
	DryRunSet    bool
	Recursive    bool
	RecursiveSet bool
	Force        bool
	ForceSet     bool
}

// BindExecutionFlags attaches the enabled execution flags to the command as toggle flags.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	flagSet := command.Flags()
	bindToggle(flagSet, definitions.DryRun, defaults.DryRun)
	bindToggle(flagSet, definitions.Recursive, defaults.Recursive)
	bindToggle(flagSet, definitions.Force, defaults.Force)
}

// ResolveExecutionFlags reads the execution flags bound to the command. The boolean result is false when the
// command carries none of them.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlags, bool) {
	if command == nil {
		return ExecutionFlags{}, false
	}

	flagSet := command.Flags()
	resolved := ExecutionFlags{}
	dryRunAvailable := readToggle(flagSet, DryRunFlagName, &resolved.DryRun, &resolved.DryRunSet)
	recursiveAvailable := readToggle(flagSet, RecursiveFlagName, &resolved.Recursive, &resolved.RecursiveSet)
	forceAvailable := readToggle(flagSet, ForceFlagName, &resolved.Force, &resolved.ForceSet)
	return resolved, dryRunAvailable || recursiveAvailable || forceAvailable
}

func bindToggle(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if !definition.Enabled || len(definition.Name) == 0 {
		return
	}
	if flagSet.Lookup(definition.Name) != nil {
		return
	}
	AddToggleFlag(flagSet, nil, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}

func readToggle(flagSet *pflag.FlagSet, flagName string, value *bool, changed *bool) bool {
	registeredFlag := flagSet.Lookup(flagName)
	if registeredFlag == nil {
		return false
	}
	*value = registeredFlag.Value.String() == toggleTrueCanonicalValue
	*changed = registeredFlag.Changed
	return true
}
