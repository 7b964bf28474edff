package launcher

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	Out     io.Writer
}

// Start might start the spinner. msg is printed instead if spinning is disabled
func (m *MaybeSpinner) Start(msg string) {
	m.Spinner.Suffix = " " + msg
	if m.Spin {
		m.Spinner.Start()
	} else if msg != "" {
		fmt.Fprintln(m.Out, msg)
	}
}

// Stop will stop the spinner and print msg (if any)
func (m *MaybeSpinner) Stop(msg string) {
	if m.Spin {
		m.Spinner.Stop()
	}
	if msg != "" {
		fmt.Fprintln(m.Out, msg)
	}
}

// Update will update the spinner text. Nothing is printed if spinning is disabled
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Lock()
	m.Spinner.Suffix = " " + t
	m.Spinner.Unlock()
}

// Progress returns a callback that shows done/total with prefix. The spinner
// starts with the first call and stops once done reaches total.
// Calls have to be serialized
func (m *MaybeSpinner) Progress(prefix string) func(done int, total int) {
	started := false
	return func(done int, total int) {
		if !started {
			started = true
			m.Start(fmt.Sprintf("%s (%d)", prefix, total))
		}
		m.Update(fmt.Sprintf("%s %d/%d", prefix, done, total))
		if done == total {
			m.Stop("")
		}
	}
}

// NewMaybeSpinner will return a new MaybeSpinner
func NewMaybeSpinner(spin bool) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond),
		Out:     os.Stdout,
	}
	s.Spinner.Prefix = " "
	return s
}
