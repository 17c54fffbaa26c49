package reconcile

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/gemote/internal/repos/discovery"
	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	discovererNotConfiguredMessageConstant = "walker requires a child discoverer in recursive mode"
	nodeErrorTemplateConstant              = "[%s] %v"
	visitingRepositoryMessageConstant      = "visiting repository"
	skippingChildMessageConstant           = "skipping undeclared sub-repository"
	missingChildMessageConstant            = "declared sub-repository not found"
	childFailedMessageConstant             = "sub-repository failed"
	logFieldLocationConstant               = "location"
	logFieldRepositoryRootConstant         = "repository_root"
	logFieldChildPathConstant              = "child_path"
)

// ErrDiscovererNotConfigured indicates a recursive walker was constructed without a discoverer.
var ErrDiscovererNotConfigured = errors.New(discovererNotConfiguredMessageConstant)

// Location identifies a node by its slash-separated path from the root repository. The root has an empty path.
type Location struct {
	Path string
}

// IsRoot reports whether the location is the root repository.
func (location Location) IsRoot() bool {
	return len(location.Path) == 0
}

// Child extends the location by a relative path.
func (location Location) Child(relativePath string) Location {
	if location.IsRoot() {
		return Location{Path: relativePath}
	}
	return Location{Path: path.Join(location.Path, relativePath)}
}

// Visitor performs the per-node work of a walk.
type Visitor interface {
	// VisitRepository handles one repository. An error stops descent below it.
	VisitRepository(executionContext context.Context, location Location, repository shared.Repository) error
	// DeclaredChildren returns the relative paths of the sub-repositories this node expects.
	DeclaredChildren() []string
	// Descend returns the visitor for a discovered child, or false when the child is not declared.
	Descend(relativePath string) (Visitor, bool)
}

// ChildDiscoverer lists the immediate sub-repositories of a repository.
type ChildDiscoverer interface {
	DiscoverChildren(executionContext context.Context, locationPath string, repository shared.Repository) ([]discovery.Node, error)
}

// NodeError records the failure of one sub-repository. Its siblings are still visited.
type NodeError struct {
	Path string
	Err  error
}

// Error describes the failed node.
func (nodeError *NodeError) Error() string {
	return fmt.Sprintf(nodeErrorTemplateConstant, nodeError.Path, nodeError.Err)
}

// Unwrap exposes the underlying failure.
func (nodeError *NodeError) Unwrap() error {
	return nodeError.Err
}

// WalkerDependencies captures collaborators required by Walker.
type WalkerDependencies struct {
	Discoverer  ChildDiscoverer
	Diagnostics shared.DiagnosticReporter
	Logger      *zap.Logger
}

// WalkerOptions configures a walk.
type WalkerOptions struct {
	Recursive bool
}

// Walker traverses a repository tree depth-first, parents before children, children in ascending path order.
type Walker struct {
	discoverer  ChildDiscoverer
	diagnostics shared.DiagnosticReporter
	logger      *zap.Logger
	recursive   bool
}

// NewWalker constructs a Walker.
func NewWalker(dependencies WalkerDependencies, options WalkerOptions) (*Walker, error) {
	if options.Recursive && dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	diagnostics := dependencies.Diagnostics
	if diagnostics == nil {
		diagnostics = shared.NewMultiDiagnosticReporter()
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		discoverer:  dependencies.Discoverer,
		diagnostics: diagnostics,
		logger:      logger,
		recursive:   options.Recursive,
	}, nil
}

// Walk visits the root repository and, in recursive mode, every declared and discovered descendant.
// A failure at the root is returned immediately. Failures below the root are collected as *NodeError values and
// returned joined once the walk completes.
func (walker *Walker) Walk(executionContext context.Context, repository shared.Repository, visitor Visitor) error {
	rootLocation := Location{}
	if visitError := walker.visit(executionContext, rootLocation, repository, visitor); visitError != nil {
		return visitError
	}
	if !walker.recursive {
		return nil
	}

	var nodeErrors []error
	if childrenError := walker.walkChildren(executionContext, rootLocation, repository, visitor, &nodeErrors); childrenError != nil {
		return childrenError
	}
	return errors.Join(nodeErrors...)
}

func (walker *Walker) visit(executionContext context.Context, location Location, repository shared.Repository, visitor Visitor) error {
	walker.logger.Debug(
		visitingRepositoryMessageConstant,
		zap.String(logFieldLocationConstant, location.Path),
		zap.String(logFieldRepositoryRootConstant, repository.RootPath()),
	)
	return visitor.VisitRepository(executionContext, location, repository)
}

func (walker *Walker) walkChildren(executionContext context.Context, location Location, repository shared.Repository, visitor Visitor, nodeErrors *[]error) error {
	children, discoverError := walker.discoverer.DiscoverChildren(executionContext, location.Path, repository)
	if discoverError != nil {
		return discoverError
	}

	discoveredPaths := make(map[string]struct{}, len(children))
	for _, child := range children {
		discoveredPaths[child.Path] = struct{}{}
	}

	declaredPaths := append([]string(nil), visitor.DeclaredChildren()...)
	sort.Strings(declaredPaths)
	for _, declaredPath := range declaredPaths {
		if _, discovered := discoveredPaths[declaredPath]; discovered {
			continue
		}
		walker.logger.Debug(missingChildMessageConstant, zap.String(logFieldLocationConstant, location.Path), zap.String(logFieldChildPathConstant, declaredPath))
		walker.diagnostics.Report(shared.NewRepositoryNotFoundDiagnostic(location.Path, declaredPath))
	}

	sort.Slice(children, func(leftIndex int, rightIndex int) bool {
		return children[leftIndex].Path < children[rightIndex].Path
	})
	for _, child := range children {
		childVisitor, declared := visitor.Descend(child.Path)
		if !declared {
			walker.logger.Debug(skippingChildMessageConstant, zap.String(logFieldLocationConstant, location.Path), zap.String(logFieldChildPathConstant, child.Path))
			walker.diagnostics.Report(shared.NewRepositoryNotConfiguredDiagnostic(location.Path, child.Path))
			continue
		}

		childLocation := location.Child(child.Path)
		if childError := walker.walkNode(executionContext, childLocation, child.Repository, childVisitor, nodeErrors); childError != nil {
			walker.logger.Debug(childFailedMessageConstant, zap.String(logFieldLocationConstant, childLocation.Path), zap.Error(childError))
			*nodeErrors = append(*nodeErrors, &NodeError{Path: childLocation.Path, Err: childError})
		}
	}
	return nil
}

func (walker *Walker) walkNode(executionContext context.Context, location Location, repository shared.Repository, visitor Visitor, nodeErrors *[]error) error {
	if visitError := walker.visit(executionContext, location, repository, visitor); visitError != nil {
		return visitError
	}
	return walker.walkChildren(executionContext, location, repository, visitor, nodeErrors)
}
