package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/gemote/internal/remoteconfig"
	"github.com/temirov/gemote/internal/repos/remotes"
	"github.com/temirov/gemote/internal/repos/shared"
)

const (
	repositoryHeaderTemplateConstant = "[%s]\n"
	actionLineTemplateConstant       = "  %s\n"
	inSyncMessageConstant            = "Already in sync. No changes needed.\n"
	listRemotesErrorTemplateConstant = "failed to list local remotes: %w"
	applyActionsErrorTemplate        = "failed to apply sync actions: %w"
	executorNotConfiguredMessage     = "sync visitor requires a remote executor"
	configurationNotProvidedMessage  = "sync visitor requires a configuration node"
)

var (
	// ErrRemoteExecutorNotConfigured indicates a SyncVisitor was built without an executor.
	ErrRemoteExecutorNotConfigured = errors.New(executorNotConfiguredMessage)
	// ErrConfigurationNodeMissing indicates a SyncVisitor was built without a configuration node.
	ErrConfigurationNodeMissing = errors.New(configurationNotProvidedMessage)
)

// SyncSummary accumulates counts across every node a sync walk visits.
type SyncSummary struct {
	RepositoriesVisited int
	ActionsPlanned      int
	ActionsApplied      int
}

// SyncVisitorDependencies captures collaborators required by SyncVisitor.
type SyncVisitorDependencies struct {
	Executor    *remotes.Executor
	Reporter    shared.Reporter
	Diagnostics shared.DiagnosticReporter
}

// SyncVisitor reconciles each matched repository against its configuration node.
type SyncVisitor struct {
	dependencies SyncVisitorDependencies
	node         *remoteconfig.Node
	dryRun       bool
	summary      *SyncSummary
}

// NewSyncVisitor constructs the visitor for the root configuration node.
func NewSyncVisitor(dependencies SyncVisitorDependencies, node *remoteconfig.Node, dryRun bool) (*SyncVisitor, error) {
	if dependencies.Executor == nil {
		return nil, ErrRemoteExecutorNotConfigured
	}
	if node == nil {
		return nil, ErrConfigurationNodeMissing
	}
	if dependencies.Reporter == nil {
		dependencies.Reporter = shared.NewWriterReporter(nil)
	}
	if dependencies.Diagnostics == nil {
		dependencies.Diagnostics = shared.NewMultiDiagnosticReporter()
	}
	return &SyncVisitor{dependencies: dependencies, node: node, dryRun: dryRun, summary: &SyncSummary{}}, nil
}

// Summary returns the counts accumulated so far across the whole walk.
func (visitor *SyncVisitor) Summary() SyncSummary {
	return *visitor.summary
}

// VisitRepository snapshots the local remotes, plans, reports, and applies unless running dry.
func (visitor *SyncVisitor) VisitRepository(executionContext context.Context, location Location, repository shared.Repository) error {
	localRemotes, listError := repository.ListRemotes(executionContext)
	if listError != nil {
		return fmt.Errorf(listRemotesErrorTemplateConstant, listError)
	}

	desiredState := remotes.DesiredState{Policy: visitor.node.Settings.ExtraRemotes, Remotes: visitor.node.Remotes}
	actions := remotes.Plan(desiredState, localRemotes, location.Path, visitor.dependencies.Diagnostics)

	visitor.summary.RepositoriesVisited++
	visitor.summary.ActionsPlanned += len(actions)

	reporter := visitor.dependencies.Reporter
	if !location.IsRoot() {
		reporter.Printf(repositoryHeaderTemplateConstant, location.Path)
	}
	if len(actions) == 0 {
		reporter.Printf(inSyncMessageConstant)
		return nil
	}
	for _, action := range actions {
		reporter.Printf(actionLineTemplateConstant, action)
	}

	if visitor.dryRun {
		return nil
	}
	if applyError := visitor.dependencies.Executor.Apply(executionContext, repository, actions); applyError != nil {
		var partial *remotes.ApplyError
		if errors.As(applyError, &partial) {
			visitor.summary.ActionsApplied += partial.Index
		}
		return fmt.Errorf(applyActionsErrorTemplate, applyError)
	}
	visitor.summary.ActionsApplied += len(actions)
	return nil
}

// DeclaredChildren returns the configured sub-repository paths.
func (visitor *SyncVisitor) DeclaredChildren() []string {
	return visitor.node.SubmodulePaths()
}

// Descend returns the visitor for a configured sub-repository.
func (visitor *SyncVisitor) Descend(relativePath string) (Visitor, bool) {
	childNode, declared := visitor.node.Submodule(relativePath)
	if !declared {
		return nil, false
	}
	return &SyncVisitor{
		dependencies: visitor.dependencies,
		node:         childNode,
		dryRun:       visitor.dryRun,
		summary:      visitor.summary,
	}, true
}
