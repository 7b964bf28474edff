package logsink

import (
	"fmt"
	"io"
	"sync"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/logparser"
)

// Console writes lines to a terminal. Minecraft log lines with the WARN or ERROR level are highlighted
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewConsole returns a Console writing to out
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

// Write prints line
func (c *Console) Write(line string) {
	if c.color {
		parsed := logparser.ParseLine(line)
		switch {
		case parsed.IsError():
			line = gchalk.Red(line)
		case parsed.IsWarning():
			line = gchalk.Yellow(line)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}
