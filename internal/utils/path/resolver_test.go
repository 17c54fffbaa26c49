package pathutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gemote/internal/utils/path"
)

const (
	testHomeDirectoryConstant    = "/home/gemote"
	testBaseDirectoryConstant    = "/work/project"
	testRelativeDocumentConstant = "remotes.yaml"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "bare_tilde", input: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_slash", input: "~/projects/app", expectedPath: filepath.Join(testHomeDirectoryConstant, "projects", "app")},
		{name: "other_user", input: "~other/app", expectedPath: "~other/app"},
		{name: "absolute", input: "/tmp/app", expectedPath: "/tmp/app"},
		{name: "empty", input: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderProviderFailureLeavesPath(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})
	require.Equal(testInstance, "~/app", expander.Expand("~/app"))
}

func TestPathResolverResolve(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	resolver := pathutils.NewPathResolver(pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	}))

	testCases := []struct {
		name          string
		input         string
		baseDirectory string
		expectedPath  string
	}{
		{name: "blank", input: "   ", expectedPath: ""},
		{name: "relative_to_base", input: testRelativeDocumentConstant, baseDirectory: testBaseDirectoryConstant, expectedPath: filepath.Join(testBaseDirectoryConstant, testRelativeDocumentConstant)},
		{name: "relative_to_working_directory", input: testRelativeDocumentConstant, expectedPath: filepath.Join(workingDirectory, testRelativeDocumentConstant)},
		{name: "home_ignores_base", input: " ~/.gemote ", baseDirectory: testBaseDirectoryConstant, expectedPath: filepath.Join(testHomeDirectoryConstant, ".gemote")},
		{name: "absolute_cleaned", input: "/work/project/../other/.gemote", baseDirectory: testBaseDirectoryConstant, expectedPath: "/work/other/.gemote"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedPath, resolveError := resolver.Resolve(testCase.input, testCase.baseDirectory)
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}
