// Package utils exposes reusable helpers consumed by the CLI commands.
//
// It houses the Viper-backed ConfigurationLoader (embedded defaults, settings
// file, dotenv files, GEMOTE_ environment overrides), the zap LoggerFactory,
// the FlushingWriter shared by logs and command output, and the accessor for
// values the root command stores in the command context.
package utils
