package logsink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSingleConsumer(t *testing.T) {
	queue := NewChannel(4)
	mem := &Memory{}

	done := make(chan struct{})
	go func() {
		queue.Drain(mem)
		close(done)
	}()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				queue.Write("line")
			}
		}()
	}
	wg.Wait()
	queue.Close()
	<-done

	assert.Len(t, mem.Lines(), 200)

	// writing after close is a no-op
	queue.Write("late")
	queue.Close()
	assert.Len(t, mem.Lines(), 200)
}

func TestConsolePlain(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewConsole(buf, false)
	c.Write("[10:00:00] [main/ERROR]: boom")
	c.Write("hello")
	assert.Equal(t, "[10:00:00] [main/ERROR]: boom\nhello\n", buf.String())
}

func TestMulti(t *testing.T) {
	a, b := &Memory{}, &Memory{}
	Printf(Multi{a, b}, "%d jars", 3)
	assert.Equal(t, []string{"3 jars"}, a.Lines())
	assert.Equal(t, []string{"3 jars"}, b.Lines())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "launch.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	f.Write("first")
	f.Write("second")
	require.NoError(t, f.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " first"))
	assert.True(t, strings.HasSuffix(lines[1], " second"))
}
