package remoteconfig

import (
	"sort"

	"github.com/temirov/gemote/internal/repos/shared"
)

// Settings holds per-node reconciliation settings.
type Settings struct {
	ExtraRemotes shared.ExtraRemotePolicy `toml:"extra_remotes" yaml:"extra_remotes"`
}

// Node is the declared state of one repository and its sub-repositories.
// Submodule keys are slash-separated paths relative to this repository's root.
type Node struct {
	Settings   Settings                      `toml:"settings" yaml:"settings"`
	Remotes    map[string]shared.RemoteState `toml:"remotes" yaml:"remotes"`
	Submodules map[string]*Node              `toml:"submodules,omitempty" yaml:"submodules,omitempty"`
}

// NewNode returns an empty node with the ignore policy.
func NewNode() *Node {
	return &Node{
		Settings:   Settings{ExtraRemotes: shared.ExtraRemotePolicyIgnore},
		Remotes:    map[string]shared.RemoteState{},
		Submodules: map[string]*Node{},
	}
}

// RemoteNames returns the declared remote names in ascending order.
func (node *Node) RemoteNames() []string {
	remoteNames := make([]string, 0, len(node.Remotes))
	for remoteName := range node.Remotes {
		remoteNames = append(remoteNames, remoteName)
	}
	sort.Strings(remoteNames)
	return remoteNames
}

// SubmodulePaths returns the declared sub-repository paths in ascending order.
func (node *Node) SubmodulePaths() []string {
	submodulePaths := make([]string, 0, len(node.Submodules))
	for submodulePath := range node.Submodules {
		submodulePaths = append(submodulePaths, submodulePath)
	}
	sort.Strings(submodulePaths)
	return submodulePaths
}

// Submodule returns the declared node for the relative path.
func (node *Node) Submodule(relativePath string) (*Node, bool) {
	child, exists := node.Submodules[relativePath]
	if !exists || child == nil {
		return nil, false
	}
	return child, true
}

// SetSubmodule declares a sub-repository node.
func (node *Node) SetSubmodule(relativePath string, child *Node) {
	if node.Submodules == nil {
		node.Submodules = map[string]*Node{}
	}
	node.Submodules[relativePath] = child
}

// SetRemote declares a remote.
func (node *Node) SetRemote(remoteName string, state shared.RemoteState) {
	if node.Remotes == nil {
		node.Remotes = map[string]shared.RemoteState{}
	}
	node.Remotes[remoteName] = state
}
