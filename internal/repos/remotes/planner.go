package remotes

import (
	"sort"

	"github.com/temirov/gemote/internal/repos/shared"
)

// DesiredState is the declared remote set of one repository together with its extra-remote policy.
type DesiredState struct {
	Policy  shared.ExtraRemotePolicy
	Remotes map[string]shared.RemoteState
}

// Plan compares the desired remotes against the local remotes and returns the ordered actions that reconcile them.
// Declared remotes come first in ascending name order, followed by undeclared local remotes in ascending order as
// permitted by the policy. Under the warn policy each undeclared remote is reported to diagnostics instead.
func Plan(desired DesiredState, local map[string]shared.RemoteState, repositoryPath string, diagnostics shared.DiagnosticReporter) []Action {
	var actions []Action

	for _, remoteName := range sortedRemoteNames(desired.Remotes) {
		desiredRemote := desired.Remotes[remoteName]
		localRemote, exists := local[remoteName]
		if !exists {
			actions = append(actions, NewAddAction(remoteName, desiredRemote.URL, desiredRemote.PushURL))
			continue
		}
		if localRemote.URL != desiredRemote.URL {
			actions = append(actions, NewUpdateURLAction(remoteName, localRemote.URL, desiredRemote.URL))
		}
		if localRemote.PushURL != desiredRemote.PushURL {
			actions = append(actions, NewUpdatePushURLAction(remoteName, localRemote.PushURL, desiredRemote.PushURL))
		}
	}

	policy := desired.Policy.Normalized()
	for _, remoteName := range sortedRemoteNames(local) {
		if _, declared := desired.Remotes[remoteName]; declared {
			continue
		}
		switch policy {
		case shared.ExtraRemotePolicyWarn:
			if diagnostics != nil {
				diagnostics.Report(shared.NewExtraRemoteDiagnostic(repositoryPath, remoteName))
			}
		case shared.ExtraRemotePolicyRemove:
			actions = append(actions, NewRemoveAction(remoteName))
		}
	}

	return actions
}

func sortedRemoteNames(remotes map[string]shared.RemoteState) []string {
	remoteNames := make([]string, 0, len(remotes))
	for remoteName := range remotes {
		remoteNames = append(remoteNames, remoteName)
	}
	sort.Strings(remoteNames)
	return remoteNames
}
