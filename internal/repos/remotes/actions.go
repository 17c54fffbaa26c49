package remotes

import "fmt"

// ActionKind identifies the change an Action performs.
type ActionKind string

const (
	// ActionAdd creates a remote.
	ActionAdd ActionKind = "add"
	// ActionUpdateURL replaces the fetch URL of a remote.
	ActionUpdateURL ActionKind = "update-url"
	// ActionUpdatePushURL sets or clears the push URL of a remote.
	ActionUpdatePushURL ActionKind = "update-push-url"
	// ActionRemove deletes a remote.
	ActionRemove ActionKind = "remove"
)

const (
	addActionTemplateConstant           = "add remote %s (url: %s)"
	addActionPushSuffixTemplateConstant = " (push_url: %s)"
	updateURLActionTemplateConstant     = "update remote %s url: %s -> %s"
	updatePushURLActionTemplateConstant = "update remote %s push_url: %s -> %s"
	removeActionTemplateConstant        = "remove remote %s"
	unknownActionTemplateConstant       = "%s remote %s"
	absentValueLabelConstant            = "(none)"
)

// Action is a single planned change to one remote.
type Action struct {
	Kind       ActionKind
	Name       string
	URL        string
	PushURL    string
	OldURL     string
	NewURL     string
	OldPushURL string
	NewPushURL string
}

// NewAddAction plans the creation of a remote.
func NewAddAction(remoteName string, fetchURL string, pushURL string) Action {
	return Action{Kind: ActionAdd, Name: remoteName, URL: fetchURL, PushURL: pushURL}
}

// NewUpdateURLAction plans a fetch URL change.
func NewUpdateURLAction(remoteName string, oldURL string, newURL string) Action {
	return Action{Kind: ActionUpdateURL, Name: remoteName, OldURL: oldURL, NewURL: newURL}
}

// NewUpdatePushURLAction plans a push URL change. Empty values mean absent.
func NewUpdatePushURLAction(remoteName string, oldPushURL string, newPushURL string) Action {
	return Action{Kind: ActionUpdatePushURL, Name: remoteName, OldPushURL: oldPushURL, NewPushURL: newPushURL}
}

// NewRemoveAction plans the deletion of a remote.
func NewRemoveAction(remoteName string) Action {
	return Action{Kind: ActionRemove, Name: remoteName}
}

// String renders the action as a single human-readable diff line.
func (action Action) String() string {
	switch action.Kind {
	case ActionAdd:
		description := fmt.Sprintf(addActionTemplateConstant, action.Name, action.URL)
		if len(action.PushURL) > 0 {
			description += fmt.Sprintf(addActionPushSuffixTemplateConstant, action.PushURL)
		}
		return description
	case ActionUpdateURL:
		return fmt.Sprintf(updateURLActionTemplateConstant, action.Name, action.OldURL, action.NewURL)
	case ActionUpdatePushURL:
		return fmt.Sprintf(updatePushURLActionTemplateConstant, action.Name, displayOptional(action.OldPushURL), displayOptional(action.NewPushURL))
	case ActionRemove:
		return fmt.Sprintf(removeActionTemplateConstant, action.Name)
	default:
		return fmt.Sprintf(unknownActionTemplateConstant, action.Kind, action.Name)
	}
}

func displayOptional(value string) string {
	if len(value) == 0 {
		return absentValueLabelConstant
	}
	return value
}
