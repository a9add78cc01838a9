package migrate

import "fmt"

// Action is the user-chosen strategy for handling pre-existing provider
// configuration before fresh templates are installed.
type Action string

const (
	// ActionReplace discards the existing configuration and installs fresh templates.
	ActionReplace Action = "replace"

	// ActionMigrateSupersede moves existing files into the local override
	// location, where they take precedence over shipped rules of the same name.
	ActionMigrateSupersede Action = "migrate-supersede"

	// ActionMigratePreserve moves existing files into the local override
	// location, where they coexist with shipped rules.
	ActionMigratePreserve Action = "migrate-preserve"

	// ActionSkip leaves the existing configuration untouched and installs nothing.
	ActionSkip Action = "skip"
)

// DefaultAction is used when no interactive choice is available.
const DefaultAction = ActionReplace

// ParseAction converts a string into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionReplace, ActionMigrateSupersede, ActionMigratePreserve, ActionSkip:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Actions returns all actions in presentation order.
func Actions() []Action {
	return []Action{ActionReplace, ActionMigrateSupersede, ActionMigratePreserve, ActionSkip}
}

// String returns the wire form of the action.
func (a Action) String() string {
	return string(a)
}

// IsMigration reports whether the action moves existing files into the
// override location (as opposed to replacing or skipping).
func (a Action) IsMigration() bool {
	return a == ActionMigrateSupersede || a == ActionMigratePreserve
}

// Description returns a short human-readable explanation shown in prompts.
func (a Action) Description() string {
	switch a {
	case ActionReplace:
		return "Discard existing configuration and install fresh rules"
	case ActionMigrateSupersede:
		return "Keep existing rules; they override shipped rules of the same name"
	case ActionMigratePreserve:
		return "Keep existing rules alongside shipped rules"
	case ActionSkip:
		return "Leave existing configuration untouched"
	}
	return ""
}
