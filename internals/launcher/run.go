package launcher

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/pkg/errors"
)

// maximum length of a single line of game output
const maxLineLength = 1024 * 1024

// Run starts inv and writes every line of its combined stdout and stderr to sink
// as soon as it arrives. It blocks until the process exited.
// A non zero exit code is not an error. If the process can not be started,
// the reason is written to sink and an merrors.ErrLaunchSpawn with exit code -1 is returned.
// Canceling ctx kills the process
func Run(ctx context.Context, inv *Invocation, sink logsink.Sink) (int, error) {
	if sink == nil {
		sink = logsink.Discard
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	// children might keep the pipe open after minecraft was killed
	cmd.WaitDelay = 5 * time.Second

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		logsink.Printf(sink, "Error launching Minecraft: %s", err)
		return -1, merrors.Wrap(merrors.ErrLaunchSpawn, inv.Path, err)
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close()
		waitErr <- err
	}()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for scanner.Scan() {
		sink.Write(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logsink.Printf(sink, "Error reading Minecraft output: %s", err)
		// keep the process from blocking on a full pipe
		io.Copy(io.Discard, pr)
	}

	err := <-waitErr
	if ctx.Err() != nil {
		return -1, ctx.Err()
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	case cmd.ProcessState != nil:
		return cmd.ProcessState.ExitCode(), err
	default:
		return -1, err
	}
}
