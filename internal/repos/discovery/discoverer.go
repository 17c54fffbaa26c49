package discovery

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	openerNotConfiguredMessageConstant  = "repository opener not configured"
	invalidSubmodulePathMessageConstant = "submodule path escapes the repository"
	listSubmodulesErrorTemplateConstant = "unable to list registered submodules of %s: %w"
	discoveredChildrenMessageConstant   = "discovered sub-repositories"
	logFieldRepositoryRootConstant      = "repository_root"
	logFieldRegisteredCountConstant     = "registered_count"
	logFieldScannedCountConstant        = "scanned_count"
	logFieldChildCountConstant          = "child_count"
	currentDirectoryPathConstant        = "."
	parentDirectoryPathConstant         = ".."
	parentDirectoryPrefixConstant       = "../"
)

var (
	// ErrRepositoryOpenerNotConfigured indicates the discoverer was constructed without an opener.
	ErrRepositoryOpenerNotConfigured = errors.New(openerNotConfiguredMessageConstant)
	errInvalidSubmodulePath          = errors.New(invalidSubmodulePathMessageConstant)
)

// Node is an immediate sub-repository of a repository.
type Node struct {
	// Path is slash-separated and relative to the parent repository root.
	Path       string
	Repository shared.Repository
}

// Discoverer finds the immediate sub-repositories of a repository.
type Discoverer struct {
	opener      shared.RepositoryOpener
	scanner     *FilesystemScanner
	diagnostics shared.DiagnosticReporter
	logger      *zap.Logger
}

// NewDiscoverer constructs a Discoverer. Unopenable children are reported to diagnostics and skipped.
func NewDiscoverer(opener shared.RepositoryOpener, diagnostics shared.DiagnosticReporter, logger *zap.Logger) (*Discoverer, error) {
	if opener == nil {
		return nil, ErrRepositoryOpenerNotConfigured
	}
	if diagnostics == nil {
		diagnostics = shared.NewMultiDiagnosticReporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		opener:      opener,
		scanner:     NewFilesystemScanner(),
		diagnostics: diagnostics,
		logger:      logger,
	}, nil
}

// DiscoverChildren returns the registered submodules followed by the scanned repository roots, deduplicated by path
// with registered entries taking precedence, sorted ascending by path. locationPath is the repository's slash-separated
// path relative to the walk root, empty for the root itself, and is the path diagnostics are reported against.
func (discoverer *Discoverer) DiscoverChildren(executionContext context.Context, locationPath string, repository shared.Repository) ([]Node, error) {
	rootPath := repository.RootPath()

	registeredPaths, listError := repository.ListSubmodules(executionContext)
	if listError != nil {
		return nil, fmt.Errorf(listSubmodulesErrorTemplateConstant, rootPath, listError)
	}

	knownPaths := make(map[string]struct{}, len(registeredPaths))
	childrenByPath := make(map[string]Node)
	registeredCount := 0

	for _, registeredPath := range registeredPaths {
		normalizedPath, normalizeError := normalizeRelativePath(registeredPath)
		if normalizeError != nil {
			discoverer.diagnostics.Report(shared.NewSubmoduleUnavailableDiagnostic(locationPath, registeredPath, normalizeError))
			continue
		}
		knownPaths[normalizedPath] = struct{}{}
		if _, seen := childrenByPath[normalizedPath]; seen {
			continue
		}

		childRepository, openError := discoverer.opener.OpenRepository(executionContext, filepath.Join(rootPath, filepath.FromSlash(normalizedPath)))
		if openError != nil {
			discoverer.diagnostics.Report(shared.NewSubmoduleUnavailableDiagnostic(locationPath, normalizedPath, openError))
			continue
		}
		childrenByPath[normalizedPath] = Node{Path: normalizedPath, Repository: childRepository}
		registeredCount++
	}

	scannedCount := 0
	for _, scannedPath := range discoverer.scanner.Scan(rootPath, knownPaths) {
		if _, seen := childrenByPath[scannedPath]; seen {
			continue
		}
		childRepository, openError := discoverer.opener.OpenRepository(executionContext, filepath.Join(rootPath, filepath.FromSlash(scannedPath)))
		if openError != nil {
			discoverer.diagnostics.Report(shared.NewRepositoryUnavailableDiagnostic(locationPath, scannedPath, openError))
			continue
		}
		childrenByPath[scannedPath] = Node{Path: scannedPath, Repository: childRepository}
		scannedCount++
	}

	children := make([]Node, 0, len(childrenByPath))
	for _, child := range childrenByPath {
		children = append(children, child)
	}
	sort.Slice(children, func(leftIndex int, rightIndex int) bool {
		return children[leftIndex].Path < children[rightIndex].Path
	})

	discoverer.logger.Debug(
		discoveredChildrenMessageConstant,
		zap.String(logFieldRepositoryRootConstant, rootPath),
		zap.Int(logFieldRegisteredCountConstant, registeredCount),
		zap.Int(logFieldScannedCountConstant, scannedCount),
		zap.Int(logFieldChildCountConstant, len(children)),
	)

	return children, nil
}

func normalizeRelativePath(rawPath string) (string, error) {
	slashPath := strings.TrimSpace(filepath.ToSlash(rawPath))
	if len(slashPath) == 0 || path.IsAbs(slashPath) || filepath.IsAbs(rawPath) {
		return "", errInvalidSubmodulePath
	}
	cleanedPath := path.Clean(slashPath)
	if cleanedPath == currentDirectoryPathConstant || cleanedPath == parentDirectoryPathConstant || strings.HasPrefix(cleanedPath, parentDirectoryPrefixConstant) {
		return "", errInvalidSubmodulePath
	}
	return cleanedPath, nil
}
