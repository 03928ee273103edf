// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"
	"time"
)

var (
	// ErrResultChildrenHasError is set on a batch result when one of its children failed.
	ErrResultChildrenHasError = errors.New("result has children with errors")
	// ErrWriteGob is returned when writing the results to a binary format fails.
	ErrWriteGob = errors.New("failed to write binary results")
	// ErrReadGob is returned when saved results cannot be decoded.
	ErrReadGob = errors.New("failed to read binary results")
)

// knownErrors are restored by identity when results are decoded, so errors.Is keeps working.
var knownErrors = []error{
	ErrResultChildrenHasError,
	ErrSkipOnError,
	ErrSkipCancelled,
	ErrCouldNotStartProcess,
	ErrSignalReceived,
	ErrDuplicateSignalReceived,
	ErrTimeoutExceeded,
}

// ResultStatus is the outcome of a command or batch.
type ResultStatus int

const (
	// ResultStatusUnknown is the zero value.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means the command exited with a success code.
	ResultStatusSuccess
	// ResultStatusError means the command failed or could not be started.
	ResultStatusError
	// ResultStatusSkipped means the command was never started.
	ResultStatusSkipped
)

// String returns the string representation of the ResultStatus.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	case ResultStatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result represents the outcome of running a command or batch.
type Result struct {
	Label    string        // Label of the command or batch
	Argv     []string      // Executable and arguments, empty for batches
	ExitCode int           // Exit code of the command or batch
	Error    error         // Error, if any
	StdOut   []byte        // Tail of the command's stdout
	StdErr   []byte        // Tail of the command's stderr
	Status   ResultStatus  // Outcome
	Duration time.Duration // Wall time spent running
	Children Results       // Nested results for tree output
}

// Results is a slice of Result pointers, used to represent multiple results.
type Results []*Result

// HasError reports whether any result in the tree failed.
// Skipped results are not failures in themselves.
func (r Results) HasError() bool {
	for _, v := range r {
		if v.Status == ResultStatusError {
			return true
		}

		if v.Children.HasError() {
			return true
		}
	}

	return false
}

// ExitCode returns the exit code of the first failing command, depth first.
// Failures without a positive exit code, such as a process that could not start, map to 1.
func (r Results) ExitCode() int {
	for _, v := range r {
		if len(v.Children) > 0 {
			if code := v.Children.ExitCode(); code != 0 {
				return code
			}

			continue
		}

		if v.Status == ResultStatusError {
			if v.ExitCode > 0 {
				return v.ExitCode
			}

			return 1
		}
	}

	return 0
}

// WriteText outputs the results to the specified writer with default options.
func (r Results) WriteText(w io.Writer) error {
	return writeTextResults(w, r, nil)
}

// WriteTextWithOptions outputs the results to the specified writer with the specified options.
func (r Results) WriteTextWithOptions(w io.Writer, options *OutputOptions) error {
	return writeTextResults(w, r, options)
}

// WriteBinary saves the results in gob format, readable by ReadBinary.
func (r Results) WriteBinary(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(r); err != nil {
		return errors.Join(ErrWriteGob, err)
	}

	return nil
}

// ReadBinary decodes results written by WriteBinary.
func ReadBinary(rd io.Reader) (Results, error) {
	var res Results
	if err := gob.NewDecoder(rd).Decode(&res); err != nil {
		return nil, errors.Join(ErrReadGob, err)
	}

	return res, nil
}

// gobResult is the wire form of Result. Errors travel as their message.
type gobResult struct {
	Label    string
	Argv     []string
	ExitCode int
	HasErr   bool
	ErrMsg   string
	StdOut   []byte
	StdErr   []byte
	Status   ResultStatus
	Duration time.Duration
	Children Results
}

// GobEncode implements gob.GobEncoder.
func (r *Result) GobEncode() ([]byte, error) {
	g := gobResult{
		Label:    r.Label,
		Argv:     r.Argv,
		ExitCode: r.ExitCode,
		StdOut:   r.StdOut,
		StdErr:   r.StdErr,
		Status:   r.Status,
		Duration: r.Duration,
		Children: r.Children,
	}

	if r.Error != nil {
		g.HasErr = true
		g.ErrMsg = r.Error.Error()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, errors.Join(ErrWriteGob, err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (r *Result) GobDecode(data []byte) error {
	var g gobResult
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return errors.Join(ErrReadGob, err)
	}

	*r = Result{
		Label:    g.Label,
		Argv:     g.Argv,
		ExitCode: g.ExitCode,
		StdOut:   g.StdOut,
		StdErr:   g.StdErr,
		Status:   g.Status,
		Duration: g.Duration,
		Children: g.Children,
	}

	if g.HasErr {
		r.Error = restoreError(g.ErrMsg)
	}

	return nil
}

func restoreError(msg string) error {
	for _, e := range knownErrors {
		if e.Error() == msg {
			return e
		}
	}

	return errors.New(msg)
}
