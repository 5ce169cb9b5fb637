package jvm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// maxResponseLine caps one bridge response; all-pairs results for large
	// devices run to a few hundred kilobytes.
	maxResponseLine = 64 << 20

	stderrTailLines = 20
)

var errExited = errors.New("virtual machine exited")

// Runtime is a running toolkit VM. Calls are serialised: the VM executes
// one static method at a time.
type Runtime struct {
	cfg Config

	mu      sync.Mutex
	started bool
	closed  bool
	broken  error
	nextID  int64
	version string

	cmd       *exec.Cmd
	stdin     io.WriteCloser
	responses chan response
	group     *errgroup.Group
	dir       string

	tailMu sync.Mutex
	tail   []string
}

// New returns an unstarted runtime.
func New(cfg Config) *Runtime {
	return &Runtime{cfg: cfg}
}

var (
	globalMu sync.Mutex
	global   *Runtime
)

// Start launches the process-wide virtual machine. It succeeds at most once
// per process; later calls fail with ErrAlreadyStarted.
func Start(ctx context.Context, cfg Config) (*Runtime, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil, ErrAlreadyStarted
	}
	rt := New(cfg)
	if err := rt.Start(ctx); err != nil {
		return nil, err
	}
	global = rt
	return rt, nil
}

// Current returns the process-wide virtual machine.
func Current() (*Runtime, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return nil, ErrNotStarted
	}
	return global, nil
}

// Start launches the VM and waits until the bridge reports ready.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	r.started = true

	java, err := r.cfg.javaExecutable()
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "xnode-bridge-")
	if err != nil {
		return fmt.Errorf("jvm: failed to create bridge directory: %w", err)
	}
	r.dir = dir

	bridgePath, err := writeBridge(dir)
	if err != nil {
		os.RemoveAll(dir)
		return err
	}

	args := r.cfg.arguments(bridgePath)
	cmd := r.cfg.launcher()(java, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("jvm: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("jvm: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("jvm: stderr pipe: %w", err)
	}

	Logger().Info("starting virtual machine",
		zap.String("java", java),
		zap.Strings("args", args))

	if err := cmd.Start(); err != nil {
		os.RemoveAll(dir)
		return fmt.Errorf("jvm: failed to start %s: %w", java, err)
	}

	r.cmd = cmd
	r.stdin = stdin
	r.responses = make(chan response, 1)
	r.group = &errgroup.Group{}
	r.group.Go(func() error { return r.readResponses(stdout) })
	r.group.Go(func() error { return r.pumpStderr(stderr) })

	ready, err := r.await(ctx, r.cfg.StartTimeout)
	if err != nil {
		r.shutdown(true)
		return fmt.Errorf("jvm: bridge did not become ready: %w%s", err, r.stderrTail())
	}
	if !ready.OK || ready.ID != 0 {
		r.shutdown(true)
		return fmt.Errorf("jvm: unexpected ready message %+v", ready)
	}

	r.version = ready.Value
	Logger().Info("virtual machine ready", zap.String("java.version", r.version))
	return nil
}

// Version returns the java.version reported by the running VM.
func (r *Runtime) Version() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Invoke runs one static method and blocks until it returns. Cancelling ctx
// kills the VM; the runtime is unusable afterwards.
func (r *Runtime) Invoke(ctx context.Context, call Call) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case !r.started:
		return nil, ErrNotStarted
	case r.closed:
		return nil, ErrClosed
	case r.broken != nil:
		return nil, r.broken
	}

	r.nextID++
	id := r.nextID
	line, err := encodeRequest(id, call)
	if err != nil {
		return nil, err
	}

	log := Logger().With(zap.Int64("id", id), zap.Stringer("call", call))
	log.Debug("invoking")
	started := time.Now()

	if _, err := io.WriteString(r.stdin, line); err != nil {
		r.broken = fmt.Errorf("jvm: failed to send request: %w", err)
		return nil, r.broken
	}

	resp, err := r.await(ctx, 0)
	if err != nil {
		r.broken = fmt.Errorf("jvm: %s abandoned: %w%s", call, err, r.stderrTail())
		r.kill()
		return nil, r.broken
	}
	if resp.ID != id {
		r.broken = fmt.Errorf("jvm: response id %d does not match request %d", resp.ID, id)
		return nil, r.broken
	}

	log.Debug("returned", zap.Duration("elapsed", time.Since(started)), zap.Bool("ok", resp.OK))

	if !resp.OK {
		te := &ToolkitError{
			Class:  call.Class,
			Method: call.Method,
			Output: resp.Output,
		}
		if resp.Error != nil {
			te.Type = resp.Error.Type
			te.Message = resp.Error.Message
			te.Trace = resp.Error.Trace
		}
		return nil, te
	}
	return &Result{Value: resp.Value, Null: resp.Null, Output: resp.Output}, nil
}

// Close stops the VM. Closing an unstarted or closed runtime is a no-op.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started || r.closed || r.cmd == nil {
		return nil
	}
	return r.shutdown(r.broken != nil)
}

// shutdown ends the VM process and joins the pipe goroutines. r.mu is held.
func (r *Runtime) shutdown(force bool) error {
	r.closed = true
	defer os.RemoveAll(r.dir)

	r.stdin.Close()
	if force {
		r.kill()
	} else {
		timeout := r.cfg.CloseTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		timer := time.AfterFunc(timeout, r.kill)
		defer timer.Stop()
	}

	// Drain late responses so the reader can reach EOF.
	go func() {
		for range r.responses {
		}
	}()

	readErr := r.group.Wait()
	waitErr := r.cmd.Wait()
	if force {
		return nil
	}
	if waitErr != nil {
		return fmt.Errorf("jvm: virtual machine exited: %w%s", waitErr, r.stderrTail())
	}
	return readErr
}

func (r *Runtime) kill() {
	if r.cmd != nil && r.cmd.Process != nil {
		r.cmd.Process.Kill()
	}
}

// await waits for the next response. A zero timeout waits indefinitely.
func (r *Runtime) await(ctx context.Context, timeout time.Duration) (response, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case resp, ok := <-r.responses:
		if !ok {
			return response{}, errExited
		}
		return resp, nil
	case <-ctx.Done():
		return response{}, ctx.Err()
	case <-expired:
		return response{}, fmt.Errorf("timed out after %s", timeout)
	}
}

func (r *Runtime) readResponses(stdout io.Reader) error {
	defer close(r.responses)

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponseLine)
	for scanner.Scan() {
		resp, err := decodeResponse(scanner.Bytes())
		if err != nil {
			Logger().Warn("discarding bridge output", zap.Error(err))
			continue
		}
		r.responses <- resp
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("jvm: reading responses: %w", err)
	}
	return nil
}

func (r *Runtime) pumpStderr(stderr io.Reader) error {
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		Logger().Debug("jvm", zap.String("stderr", line))

		r.tailMu.Lock()
		r.tail = append(r.tail, line)
		if len(r.tail) > stderrTailLines {
			r.tail = r.tail[len(r.tail)-stderrTailLines:]
		}
		r.tailMu.Unlock()
	}
	return nil
}

func (r *Runtime) stderrTail() string {
	r.tailMu.Lock()
	defer r.tailMu.Unlock()
	if len(r.tail) == 0 {
		return ""
	}
	return "\n" + strings.Join(r.tail, "\n")
}
