package proc

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// Result holds the outcome of a finished process
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status zero
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Combined returns stderr and stdout joined by a space, for diagnostics
func (r Result) Combined() string {
	return string(bytes.TrimSpace(r.Stderr)) + " " + string(bytes.TrimSpace(r.Stdout))
}

// ExecError is returned when an executable cannot be spawned at all
// (not found on PATH, permission denied, ...)
type ExecError struct {
	Name string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Name, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Runner runs an external executable and blocks until it exits.
// A non-zero exit status is reported in Result, not as an error.
type Runner interface {
	Run(name string, args ...string) (Result, error)
}

// Exec is the os/exec backed Runner
type Exec struct{}

// NewExec creates a new process runner
func NewExec() *Exec {
	return &Exec{}
}

// Run executes name with args, capturing stdout and stderr
func (Exec) Run(name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, &ExecError{Name: name, Err: err}
}
