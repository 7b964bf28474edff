package launcher

import (
	"fmt"

	"github.com/minepkg/mclaunch/internals/merrors"
)

// State is the outcome of a launch
type State int

const (
	// StateOK means the instance was installed and minecraft ran
	StateOK State = iota
	// StateDegraded means minecraft ran, but some artifacts failed to install
	StateDegraded
	// StateInstallAborted means the version could not be resolved. Nothing was launched
	StateInstallAborted
	// StateLaunchFailed means minecraft could not be started
	StateLaunchFailed
	// StateCanceled means the launch was canceled
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateDegraded:
		return "degraded"
	case StateInstallAborted:
		return "install aborted"
	case StateLaunchFailed:
		return "launch failed"
	case StateCanceled:
		return "canceled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status is the terminal status of a launch
type Status struct {
	State State
	// Failures are the artifacts that could not be installed
	Failures []error
	// ExitCode of minecraft. -1 if it did not run
	ExitCode int
	// Err is the reason for StateInstallAborted, StateLaunchFailed and StateCanceled
	Err error
}

// ProcessExitCode maps the status to an exit code for this process
func (s Status) ProcessExitCode() int {
	switch s.State {
	case StateOK, StateDegraded:
		return s.ExitCode
	case StateInstallAborted:
		return 2
	case StateLaunchFailed:
		return 3
	case StateCanceled:
		return 130
	}
	return 1
}

// Summary is a one line description of the status
func (s Status) Summary() string {
	switch s.State {
	case StateOK:
		return fmt.Sprintf("Minecraft exited with code %d", s.ExitCode)
	case StateDegraded:
		return fmt.Sprintf("Minecraft exited with code %d (%d artifacts failed to install)", s.ExitCode, len(s.Failures))
	default:
		if s.Err != nil {
			return fmt.Sprintf("%s: %s", s.State, s.Err)
		}
		return s.State.String()
	}
}

// FailureGroup are the failures of one error kind. Kind is nil for unknown errors
type FailureGroup struct {
	Kind     error
	Failures []error
}

// FailuresByKind groups the failures by merrors kind in pipeline order.
// Errors of unknown kinds come last
func (s Status) FailuresByKind() []FailureGroup {
	byKind := map[error][]error{}
	for _, failure := range s.Failures {
		kind := merrors.KindOf(failure)
		byKind[kind] = append(byKind[kind], failure)
	}

	groups := []FailureGroup{}
	for _, kind := range merrors.Kinds {
		if failures, ok := byKind[kind]; ok {
			groups = append(groups, FailureGroup{Kind: kind, Failures: failures})
		}
	}
	if unknown, ok := byKind[nil]; ok {
		groups = append(groups, FailureGroup{Failures: unknown})
	}
	return groups
}
