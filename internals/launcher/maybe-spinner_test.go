package launcher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaybeSpinnerWithoutSpinning(t *testing.T) {
	out := &bytes.Buffer{}
	s := NewMaybeSpinner(false)
	s.Out = out

	progress := s.Progress("Downloading assets")
	for i := 1; i <= 3; i++ {
		progress(i, 3)
	}

	// only the start message, no line per object
	assert.Equal(t, "Downloading assets (3)\n", out.String())
	assert.Equal(t, " Downloading assets 3/3", s.Spinner.Suffix)
}
