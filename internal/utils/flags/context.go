package flags

import "github.com/spf13/cobra"

const (
	// RepositoryFlagName exposes the repository path flag name.
	RepositoryFlagName = "repo"
	// RepositoryFlagUsage describes the repository path flag.
	RepositoryFlagUsage = "Path to the git repository (default: discovered from the working directory)"
	// DocumentFlagName exposes the .gemote document flag name.
	DocumentFlagName = "config"
	// DocumentFlagUsage describes the .gemote document flag.
	DocumentFlagUsage = "Path to the config file (default: <repo root>/.gemote)"
)

// RepositoryContextValues stores the repository and document selected on the command line.
type RepositoryContextValues struct {
	RepositoryPath string
	DocumentPath   string
}

// BindRepositoryContextFlags attaches --repo and --config to the command as persistent flags so every
// subcommand inherits them.
func BindRepositoryContextFlags(command *cobra.Command, defaults RepositoryContextValues) *RepositoryContextValues {
	values := defaults
	if command == nil {
		return &values
	}

	persistentFlagSet := command.PersistentFlags()
	if persistentFlagSet.Lookup(RepositoryFlagName) == nil {
		persistentFlagSet.StringVar(&values.RepositoryPath, RepositoryFlagName, defaults.RepositoryPath, RepositoryFlagUsage)
	}
	if persistentFlagSet.Lookup(DocumentFlagName) == nil {
		persistentFlagSet.StringVar(&values.DocumentPath, DocumentFlagName, defaults.DocumentPath, DocumentFlagUsage)
	}
	return &values
}
