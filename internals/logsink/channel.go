package logsink

import "sync"

// Channel is a queue with a single consumer. Producers on any goroutine call Write,
// the goroutine owning the display calls Drain.
type Channel struct {
	mu     sync.RWMutex
	lines  chan string
	closed bool
}

// NewChannel returns a Channel that buffers up to size lines before Write blocks
func NewChannel(size int) *Channel {
	return &Channel{lines: make(chan string, size)}
}

// Write queues line. Lines written after Close are dropped
func (c *Channel) Write(line string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	c.lines <- line
}

// Lines returns the receive side of the queue
func (c *Channel) Lines() <-chan string {
	return c.lines
}

// Close stops accepting lines. Lines already queued can still be received
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.lines)
}

// Drain writes every queued line to dst until the channel is closed
func (c *Channel) Drain(dst Sink) {
	for line := range c.lines {
		dst.Write(line)
	}
}
