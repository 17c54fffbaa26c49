package remoteconfig

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const (
	remoteLocationTemplateConstant    = "remotes.%s"
	submoduleLocationTemplateConstant = "submodules[%s]"
	nestedLocationTemplateConstant    = "%s.%s"
	remoteNameRequiredReason          = "remote name must not be empty"
	remoteURLRequiredReason           = "url is required"
	submodulePathRequiredReason       = "submodule path must not be empty"
	submodulePathAbsoluteReason       = "submodule path must be relative"
	submodulePathEscapesReason        = "submodule path must stay inside the repository"
	submodulePathDuplicateTemplate    = "submodule path duplicates %q after normalization"
	currentDirectoryPath              = "."
	parentDirectoryPath               = ".."
	parentDirectoryPrefix             = "../"
)

// Normalize returns a validated deep copy of node with empty collections allocated, the policy resolved, and
// submodule paths in clean slash form.
func Normalize(node *Node) (*Node, error) {
	return normalizeNode(node, "")
}

func normalizeNode(node *Node, location string) (*Node, error) {
	normalized := NewNode()
	if node == nil {
		return normalized, nil
	}
	normalized.Settings.ExtraRemotes = node.Settings.ExtraRemotes.Normalized()

	for remoteName, state := range node.Remotes {
		remoteLocation := joinLocation(location, fmt.Sprintf(remoteLocationTemplateConstant, remoteName))
		if len(strings.TrimSpace(remoteName)) == 0 {
			return nil, &ValidationError{Location: remoteLocation, Reason: remoteNameRequiredReason}
		}
		if len(strings.TrimSpace(state.URL)) == 0 {
			return nil, &ValidationError{Location: remoteLocation, Reason: remoteURLRequiredReason}
		}
		normalized.Remotes[remoteName] = state
	}

	originalKeys := make(map[string]string, len(node.Submodules))
	for submodulePath, child := range node.Submodules {
		submoduleLocation := joinLocation(location, fmt.Sprintf(submoduleLocationTemplateConstant, submodulePath))
		normalizedPath, reason := normalizeSubmodulePath(submodulePath)
		if len(reason) > 0 {
			return nil, &ValidationError{Location: submoduleLocation, Reason: reason}
		}
		if previousKey, duplicate := originalKeys[normalizedPath]; duplicate {
			return nil, &ValidationError{Location: submoduleLocation, Reason: fmt.Sprintf(submodulePathDuplicateTemplate, previousKey)}
		}
		originalKeys[normalizedPath] = submodulePath

		normalizedChild, childError := normalizeNode(child, joinLocation(location, fmt.Sprintf(submoduleLocationTemplateConstant, normalizedPath)))
		if childError != nil {
			return nil, childError
		}
		normalized.Submodules[normalizedPath] = normalizedChild
	}

	return normalized, nil
}

func normalizeSubmodulePath(rawPath string) (string, string) {
	trimmedPath := strings.TrimSpace(rawPath)
	if len(trimmedPath) == 0 {
		return "", submodulePathRequiredReason
	}
	slashPath := filepath.ToSlash(trimmedPath)
	if path.IsAbs(slashPath) || filepath.IsAbs(trimmedPath) {
		return "", submodulePathAbsoluteReason
	}
	cleanedPath := path.Clean(slashPath)
	if cleanedPath == currentDirectoryPath || cleanedPath == parentDirectoryPath || strings.HasPrefix(cleanedPath, parentDirectoryPrefix) {
		return "", submodulePathEscapesReason
	}
	return cleanedPath, ""
}

func joinLocation(parent string, child string) string {
	if len(parent) == 0 {
		return child
	}
	return fmt.Sprintf(nestedLocationTemplateConstant, parent, child)
}
