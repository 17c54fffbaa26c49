package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gemote/cmd/cli"
	"github.com/temirov/gemote/cmd/cli/remotes"
)

const (
	testSettingsFileNameConstant    = "settings.yaml"
	testEnvironmentFileNameConstant = "gemote.env"
	testOriginURLConstant           = "git@github.com:example/project.git"
	testStaleOriginURLConstant      = "https://github.com/example/project.git"
)

type applicationRun struct {
	application *cli.Application
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
	err         error
}

func runApplication(testInstance *testing.T, arguments ...string) applicationRun {
	testInstance.Helper()
	application := cli.NewApplication()
	run := applicationRun{application: application, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	application.Command().SetOut(run.stdout)
	application.Command().SetErr(run.stderr)
	run.err = application.ExecuteWithArguments(arguments)
	return run
}

func TestApplicationCommandTree(testInstance *testing.T) {
	rootCommand := cli.NewApplication().Command()
	require.Equal(testInstance, "gemote", rootCommand.Name())

	registeredCommands := map[string]bool{}
	for _, subcommand := range rootCommand.Commands() {
		registeredCommands[subcommand.Name()] = true
	}
	for _, expectedCommand := range []string{"sync", "save", "completions"} {
		require.Truef(testInstance, registeredCommands[expectedCommand], "missing command %s", expectedCommand)
	}

	for _, flagName := range []string{"settings", "env-file", "log-level", "log-format", "repo", "config"} {
		require.NotNilf(testInstance, rootCommand.PersistentFlags().Lookup(flagName), "missing flag %s", flagName)
	}
	require.Contains(testInstance, rootCommand.PersistentFlags().Lookup("log-level").Usage, "<debug|info|WARN|error>")
}

func TestApplicationCompletions(testInstance *testing.T) {
	testCases := []struct {
		name           string
		shell          string
		expectedMarker string
	}{
		{name: "bash", shell: "bash", expectedMarker: "bash completion V2 for gemote"},
		{name: "zsh", shell: "zsh", expectedMarker: "#compdef gemote"},
		{name: "fish", shell: "fish", expectedMarker: "fish completion for gemote"},
		{name: "powershell", shell: "powershell", expectedMarker: "powershell completion for gemote"},
		{name: "case_insensitive", shell: "BASH", expectedMarker: "bash completion V2 for gemote"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			run := runApplication(subTest, "completions", testCase.shell)
			require.NoError(subTest, run.err)
			require.Contains(subTest, run.stdout.String(), testCase.expectedMarker)
		})
	}
}

func TestApplicationCompletionsRejectsUnknownShell(testInstance *testing.T) {
	run := runApplication(testInstance, "completions", "tcsh")
	require.Error(testInstance, run.err)
	require.Contains(testInstance, run.err.Error(), "unsupported value \"tcsh\"")
	require.Empty(testInstance, run.stdout.String())

	missingArgument := runApplication(testInstance, "completions")
	require.Error(testInstance, missingArgument.err)
}

func TestApplicationEmbeddedDefaults(testInstance *testing.T) {
	content, contentType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", contentType)

	rawSettings := map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal(content, &rawSettings))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(rawSettings, &configuration))
	require.Equal(testInstance, cli.ApplicationConfiguration{
		Common:         cli.ApplicationCommonConfiguration{LogLevel: "warn", LogFormat: "console"},
		ConfigFileName: remotes.DefaultDocumentFileName,
		Sync:           remotes.DefaultSyncConfiguration(),
		Save:           remotes.DefaultSaveConfiguration(),
	}, configuration)

	run := runApplication(testInstance, "completions", "bash")
	require.NoError(testInstance, run.err)
	require.Equal(testInstance, configuration, run.application.Configuration())
}

func TestApplicationSettingsSources(testInstance *testing.T) {
	settingsDirectory := testInstance.TempDir()
	settingsPath := filepath.Join(settingsDirectory, testSettingsFileNameConstant)
	require.NoError(testInstance, os.WriteFile(settingsPath, []byte("config_file_name: .remotes\nsync:\n  dry_run: true\ncommon:\n  log_level: INFO\n"), 0o644))

	environmentPath := filepath.Join(settingsDirectory, testEnvironmentFileNameConstant)
	require.NoError(testInstance, os.WriteFile(environmentPath, []byte("GEMOTE_SYNC_RECURSIVE=true\n"), 0o644))
	testInstance.Setenv("GEMOTE_SYNC_RECURSIVE", "")
	require.NoError(testInstance, os.Unsetenv("GEMOTE_SYNC_RECURSIVE"))
	testInstance.Setenv("GEMOTE_SAVE_FORCE", "true")

	run := runApplication(testInstance, "--settings", settingsPath, "--env-file", environmentPath, "completions", "bash")
	require.NoError(testInstance, run.err)

	configuration := run.application.Configuration()
	require.Equal(testInstance, ".remotes", configuration.ConfigFileName)
	require.Equal(testInstance, remotes.SyncConfiguration{DryRun: true, Recursive: true}, configuration.Sync)
	require.True(testInstance, configuration.Save.Force)
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
}

func TestApplicationConfigurationErrors(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedError string
	}{
		{name: "missing_settings_file", arguments: []string{"--settings", filepath.Join(testInstance.TempDir(), "absent.yaml"), "completions", "bash"}, expectedError: "unable to load configuration"},
		{name: "missing_environment_file", arguments: []string{"--env-file", filepath.Join(testInstance.TempDir(), "absent.env"), "completions", "bash"}, expectedError: "failed to load environment file"},
		{name: "unknown_log_level", arguments: []string{"--log-level", "verbose", "completions", "bash"}, expectedError: "invalid log level"},
		{name: "unknown_log_format", arguments: []string{"--log-format", "xml", "completions", "bash"}, expectedError: "invalid log format"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			run := runApplication(subTest, testCase.arguments...)
			require.Error(subTest, run.err)
			require.Contains(subTest, run.err.Error(), testCase.expectedError)
		})
	}
}

func TestApplicationStructuredLogging(testInstance *testing.T) {
	run := runApplication(testInstance, "--log-level", "debug", "--log-format", "structured", "completions", "zsh")
	require.NoError(testInstance, run.err)
	require.Contains(testInstance, run.stderr.String(), "\"message\":\"configuration initialized\"")
	require.NotContains(testInstance, run.stdout.String(), "configuration initialized")
}

func TestApplicationSyncAndSaveAgainstGitRepository(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	repositoryDirectory := testInstance.TempDir()
	runGit(testInstance, repositoryDirectory, "init", "--quiet")
	runGit(testInstance, repositoryDirectory, "remote", "add", "origin", testStaleOriginURLConstant)

	nestedDirectory := filepath.Join(repositoryDirectory, "src", "pkg")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

	saveRun := runApplication(testInstance, "save", "--repo", nestedDirectory)
	require.NoError(testInstance, saveRun.err)
	documentPath := filepath.Join(repositoryDirectory, remotes.DefaultDocumentFileName)
	require.Equal(testInstance, "Saved remotes to "+documentPath+"\n", saveRun.stdout.String())

	refusedRun := runApplication(testInstance, "save", "--repo", repositoryDirectory)
	require.EqualError(testInstance, refusedRun.err, documentPath+" already exists. Use --force to replace it.")

	content, readError := os.ReadFile(documentPath)
	require.NoError(testInstance, readError)
	updatedContent := strings.Replace(string(content), testStaleOriginURLConstant, testOriginURLConstant, 1)
	require.NoError(testInstance, os.WriteFile(documentPath, []byte(updatedContent), 0o644))

	expectedActionLine := "  update remote origin url: " + testStaleOriginURLConstant + " -> " + testOriginURLConstant + "\n"

	dryRun := runApplication(testInstance, "sync", "--repo", repositoryDirectory, "--dry-run")
	require.NoError(testInstance, dryRun.err)
	require.Equal(testInstance, expectedActionLine+"\n(dry run — no changes applied)\n", dryRun.stdout.String())
	require.Equal(testInstance, testStaleOriginURLConstant, runGit(testInstance, repositoryDirectory, "remote", "get-url", "origin"))

	syncRun := runApplication(testInstance, "sync", "--repo", repositoryDirectory, "--config", documentPath)
	require.NoError(testInstance, syncRun.err)
	require.Equal(testInstance, expectedActionLine+"\nSync complete.\n", syncRun.stdout.String())
	require.Equal(testInstance, testOriginURLConstant, runGit(testInstance, repositoryDirectory, "remote", "get-url", "origin"))

	inSyncRun := runApplication(testInstance, "sync", "--repo", repositoryDirectory)
	require.NoError(testInstance, inSyncRun.err)
	require.Equal(testInstance, "Already in sync. No changes needed.\n", inSyncRun.stdout.String())
}

func runGit(testInstance *testing.T, directory string, arguments ...string) string {
	testInstance.Helper()
	command := exec.Command("git", arguments...)
	command.Dir = directory
	output, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(output))
	return strings.TrimSpace(string(output))
}
