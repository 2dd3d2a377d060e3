// Package shell runs external commands, streaming their output to the logger.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec. Commands run inside a
// pseudo-terminal when one is available so compilers keep their colored
// diagnostics; otherwise stdout and stderr are merged over a pipe.
type Executor struct {
	logger ports.Logger

	probe  sync.Once
	usePTY bool
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// ptyAvailable reports whether a pseudo-terminal can be opened on this system.
func (e *Executor) ptyAvailable() bool {
	e.probe.Do(func() {
		ptmx, tty, err := pty.Open()
		if err != nil {
			return
		}
		_ = tty.Close()
		_ = ptmx.Close()
		e.usePTY = true
	})
	return e.usePTY
}

// Execute runs cmd and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout io.Writer) error {
	if len(cmd.Args) == 0 {
		return nil
	}

	lw := &logWriter{logger: e.logger}
	var out io.Writer = lw
	if stdout != nil {
		out = io.MultiWriter(lw, stdout)
	}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...) //nolint:gosec // commands come from the build script
	c.Dir = cmd.WorkingDir
	c.Env = resolveEnvironment(os.Environ(), cmd.Env)

	var err error
	if e.ptyAvailable() {
		err = runPTY(c, out)
	} else {
		err = runPipe(c, out)
	}
	_ = lw.Close()

	if err == nil {
		return nil
	}

	wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", cmd.Args[0])
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return zerr.With(wrapped, "exit_code", exitErr.ExitCode())
	}
	return wrapped
}

func runPTY(c *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return err
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master fails with EIO once the child exits.
		_, _ = io.Copy(out, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

func runPipe(c *exec.Cmd, out io.Writer) error {
	w := &lockedWriter{w: out}
	c.Stdout = w
	c.Stderr = w
	return c.Run()
}

// lockedWriter serializes writes from the stdout and stderr copiers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs translate \n to \r\n.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// resolveEnvironment applies overrides on top of the inherited environment.
// The result is sorted by variable name.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
