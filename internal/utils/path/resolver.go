package pathutils

import (
	"fmt"
	"path/filepath"
	"strings"
)

const pathResolveErrorTemplateConstant = "unable to resolve path %s: %w"

// PathResolver turns user-supplied paths from flags and settings into absolute paths.
type PathResolver struct {
	homeExpander *HomeExpander
}

// NewPathResolver constructs a PathResolver. A nil expander uses the operating system home directory.
func NewPathResolver(homeExpander *HomeExpander) *PathResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &PathResolver{homeExpander: homeExpander}
}

// Resolve trims and home-expands candidatePath, then makes it absolute against baseDirectory, or against the
// process working directory when baseDirectory is empty. Blank input yields an empty result.
func (resolver *PathResolver) Resolve(candidatePath string, baseDirectory string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return "", nil
	}

	expandedPath := resolver.homeExpander.Expand(trimmedPath)
	if !filepath.IsAbs(expandedPath) && len(baseDirectory) > 0 {
		expandedPath = filepath.Join(baseDirectory, expandedPath)
	}

	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(pathResolveErrorTemplateConstant, trimmedPath, absoluteError)
	}
	return absolutePath, nil
}
