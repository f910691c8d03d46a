package handler

import (
	"fmt"

	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
)

// Action names a single dispatcher operation.
type Action string

// Recognized actions.
const (
	ActionList    Action = "list"
	ActionCreate  Action = "create"
	ActionShow    Action = "show"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
	ActionTotal   Action = "total"
	ActionInit    Action = "init"
)

// actionArity is the number of positional arguments each action takes.
var actionArity = map[Action]int{
	ActionList:    0,
	ActionCreate:  1,
	ActionShow:    1,
	ActionUpdate:  2,
	ActionDestroy: 1,
	ActionTotal:   0,
	ActionInit:    0,
}

// Arity returns how many positional arguments the action requires.
func (a Action) Arity() int {
	return actionArity[a]
}

// Mutates reports whether the action may change the stored collection.
func (a Action) Mutates() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDestroy:
		return true
	default:
		return false
	}
}

// Command is a single parsed invocation: one action plus its positional arguments.
type Command struct {
	Action Action
	Args   []string
}

// Validate checks the argument count.
func (c Command) Validate() error {
	want, ok := actionArity[c.Action]
	if !ok {
		return fmt.Errorf("%w: %q", domainerrors.ErrUnrecognizedCommand, c.Action)
	}
	if len(c.Args) != want {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", domainerrors.ErrInvalidInput, c.Action, want, len(c.Args))
	}
	return nil
}
