package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/gemote/internal/remoteconfig"
	"github.com/temirov/gemote/internal/repos/shared"
)

const snapshotListRemotesErrorTemplate = "failed to list local remotes: %w"

// SnapshotVisitor records the remotes of every visited repository into a configuration tree.
// It accepts every discovered sub-repository.
type SnapshotVisitor struct {
	node *remoteconfig.Node
}

// NewSnapshotVisitor constructs a visitor that fills a fresh configuration tree.
func NewSnapshotVisitor() *SnapshotVisitor {
	return &SnapshotVisitor{node: remoteconfig.NewNode()}
}

// Node returns the configuration tree built so far.
func (visitor *SnapshotVisitor) Node() *remoteconfig.Node {
	return visitor.node
}

// VisitRepository copies the repository's remotes into the current node. Remotes without a fetch URL are skipped.
func (visitor *SnapshotVisitor) VisitRepository(executionContext context.Context, _ Location, repository shared.Repository) error {
	localRemotes, listError := repository.ListRemotes(executionContext)
	if listError != nil {
		return fmt.Errorf(snapshotListRemotesErrorTemplate, listError)
	}
	for remoteName, state := range localRemotes {
		if len(strings.TrimSpace(state.URL)) == 0 {
			continue
		}
		visitor.node.SetRemote(remoteName, state)
	}
	return nil
}

// DeclaredChildren returns nothing: a snapshot expects no particular children.
func (visitor *SnapshotVisitor) DeclaredChildren() []string {
	return nil
}

// Descend attaches a fresh node for the child.
func (visitor *SnapshotVisitor) Descend(relativePath string) (Visitor, bool) {
	childNode := remoteconfig.NewNode()
	visitor.node.SetSubmodule(relativePath, childNode)
	return &SnapshotVisitor{node: childNode}, true
}
