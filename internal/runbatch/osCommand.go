// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/mptask/internal/ctxlog"
	"github.com/matt-FFFFFF/mptask/internal/signalbroker"
)

const (
	maxCaptureSize = 1024 * 1024      // 1MB kept per stream for the report
	tickerInterval = 10 * time.Second // Interval for the "still running" log line
)

var _ Runnable = (*OSCommand)(nil)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrTimeoutExceeded is returned when the context ended while the process was running.
	ErrTimeoutExceeded = errors.New("context done, process killed")
	// ErrSignalReceived is returned when a signal was forwarded to the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// OSCommand runs a single external process.
// Stdin is inherited. Stdout and Stderr are streamed to the writers as they are produced
// (os.Stdout and os.Stderr when nil) and the last part of each is kept in the Result.
type OSCommand struct {
	*BaseCommand
	Path             string    // Executable, resolved with LookPath when the command starts.
	Args             []string  // Arguments to the command, do not include the executable name itself.
	SuccessExitCodes []int     // Exit codes that indicate success, defaults to 0.
	Stdout           io.Writer // Live stdout destination.
	Stderr           io.Writer // Live stderr destination.
	sigCh            chan os.Signal
}

// Argv returns the executable path followed by the arguments.
func (c *OSCommand) Argv() []string {
	return slices.Concat([]string{c.Path}, c.Args)
}

// ResolvePath finds the executable in the command's own context: relative names
// against Cwd and bare names in the PATH from Env, falling back to the process PATH.
func (c *OSCommand) ResolvePath() (string, error) {
	pathList, ok := c.Env[pathEnv]
	if !ok {
		pathList = os.Getenv(pathEnv)
	}

	path, err := LookPath(c.Path, c.Cwd, pathList)
	if err != nil {
		return "", err
	}

	// The child changes to Cwd before exec, so a relative path would resolve twice.
	return filepath.Abs(path) //nolint:wrapcheck
}

// Run implements the Runnable interface for OSCommand.
// The executable is resolved here so that earlier steps can install it.
func (c *OSCommand) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).With("runnableType", "OSCommand", "label", FullLabel(c))
	logger.Debug("command info", "path", c.Path, "cwd", c.Cwd, "args", c.Args)

	res := &Result{
		Label: c.GetLabel(),
		Argv:  c.Argv(),
	}

	fail := func(err error) Results {
		res.Error = err
		res.ExitCode = -1
		res.Status = ResultStatusError

		return Results{res}
	}

	path, err := c.ResolvePath()
	if err != nil {
		return fail(errors.Join(ErrCouldNotStartProcess, err))
	}

	res.Argv = slices.Concat([]string{path}, c.Args)

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return fail(errors.Join(ErrFailedToCreatePipe, err))
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return fail(errors.Join(ErrFailedToCreatePipe, err))
	}

	stdout := newTailBuffer(maxCaptureSize)
	stderr := newTailBuffer(maxCaptureSize)

	var copiers sync.WaitGroup

	copiers.Add(2) //nolint:mnd
	go copyStream(&copiers, rOut, orDefault(c.Stdout, os.Stdout), stdout)
	go copyStream(&copiers, rErr, orDefault(c.Stderr, os.Stderr), stderr)

	start := time.Now()
	ps, err := os.StartProcess(path, slices.Concat([]string{filepath.Base(path)}, c.Args), &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   c.environ(),
		Files: []*os.File{os.Stdin, wOut, wErr},
	})

	// The child holds its own copies; closing ours lets the copiers see EOF when it exits.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		copiers.Wait()
		_ = rOut.Close()
		_ = rErr.Close()

		return fail(errors.Join(ErrCouldNotStartProcess, err))
	}

	logger.Debug("process started", "pid", ps.Pid)

	done := make(chan struct{})
	reason := make(chan error, 1)

	go watchProcess(ctx, logger, ps, sigCh, start, done, reason)

	state, waitErr := ps.Wait()
	close(done)

	killErr := <-reason

	copiers.Wait()
	_ = rOut.Close()
	_ = rErr.Close()

	res.Duration = time.Since(start)
	res.StdOut = stdout.Bytes()
	res.StdErr = stderr.Bytes()
	res.ExitCode = -1

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	res.Error = errors.Join(waitErr, killErr)

	successCodes := c.SuccessExitCodes
	if len(successCodes) == 0 {
		successCodes = []int{0}
	}

	switch {
	case res.Error == nil && slices.Contains(successCodes, res.ExitCode):
		res.Status = ResultStatusSuccess
	default:
		res.Status = ResultStatusError
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "status", res.Status.String())

	return Results{res}
}

func (c *OSCommand) environ() []string {
	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		env = append(env, k+"="+c.Env[k])
	}

	return env
}

// watchProcess forwards the first signal of each kind to ps, kills it on a repeated
// signal or when ctx ends, and reports why it intervened once done is closed.
func watchProcess(
	ctx context.Context,
	logger *slog.Logger,
	ps *os.Process,
	sigCh <-chan os.Signal,
	start time.Time,
	done <-chan struct{},
	reason chan<- error,
) {
	var why error

	seen := make(map[os.Signal]struct{})
	ctxDone := ctx.Done()

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			reason <- why
			return

		case <-ticker.C:
			logger.Info("still running", "elapsed", time.Since(start).Round(time.Second).String())

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				logger.Warn("duplicate signal, killing process", "signal", s.String())
				killPs(logger, ps)

				why = errors.Join(why, ErrDuplicateSignalReceived)

				continue
			}

			seen[s] = struct{}{}

			logger.Info("forwarding signal", "signal", s.String())

			if err := ps.Signal(s); err != nil && !errors.Is(err, os.ErrProcessDone) {
				logger.Warn("failed to forward signal", "signal", s.String(), "error", err)
			}

			why = errors.Join(why, ErrSignalReceived)

		case <-ctxDone:
			ctxDone = nil

			logger.Info("context done, killing process")
			killPs(logger, ps)

			why = errors.Join(why, ErrTimeoutExceeded, ctx.Err())
		}
	}
}

func killPs(logger *slog.Logger, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			logger.Debug("process already done", "pid", ps.Pid)
			return
		}

		logger.Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	logger.Info("process killed", "pid", ps.Pid)
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}

	return w
}
