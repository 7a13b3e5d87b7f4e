package chat

import (
	"errors"
	"fmt"
	"strings"
)

// Action names understood by DecodeAction.
const (
	ActionSwitchMode   = "switch_mode"
	actionSelectPrefix = "select_"
)

// ErrUnknownAction is returned for action names outside the known set.
var ErrUnknownAction = errors.New("unknown action")

// Action is a decoded user action. The set of implementations is closed:
// SwitchMode and SelectTest.
type Action interface {
	isAction()
}

// SwitchMode flips the session between chat and test mode.
type SwitchMode struct{}

// SelectTest runs the comparison for the test case with the given key.
type SelectTest struct {
	Key string
}

func (SwitchMode) isAction() {}
func (SelectTest) isAction() {}

// DecodeAction turns a raw action name and payload from the host into an
// Action. A select action takes its key from the payload, falling back to the
// name suffix.
func DecodeAction(name, value string) (Action, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == ActionSwitchMode:
		return SwitchMode{}, nil
	case strings.HasPrefix(name, actionSelectPrefix):
		key := strings.TrimSpace(value)
		if key == "" {
			key = strings.TrimPrefix(name, actionSelectPrefix)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: %q has no test key", ErrUnknownAction, name)
		}
		return SelectTest{Key: key}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// SelectActionName is the action name for selecting the test case key.
func SelectActionName(key string) string {
	return actionSelectPrefix + key
}
