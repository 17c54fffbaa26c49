// Package cli builds the gemote command-line interface: the Cobra command
// tree, the Viper-backed settings loader, and the zap logger shared by the
// sync, save, and completions commands.
package cli
