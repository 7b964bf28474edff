package launcher

import "context"

// Task is a Launch running in the background
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	status Status
}

// Start runs Launch on a new goroutine
func (l *Launcher) Start(ctx context.Context) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		defer cancel()
		t.status = l.Launch(ctx)
	}()
	return t
}

// Done is closed after the task finished
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task finished and returns its status
func (t *Task) Wait() Status {
	<-t.done
	return t.status
}

// Cancel stops the install or kills minecraft
func (t *Task) Cancel() { t.cancel() }
