package output

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes external tools. Tests substitute a fake to simulate
// missing binaries and failing invocations.
type Runner interface {
	Run(name string, args ...string) error
	Output(name string, args ...string) (string, error)
	Has(name string) bool
}

// invokeTimeout bounds every external tool invocation so a wedged binary
// is declared failed instead of stalling the pipeline.
const invokeTimeout = 5 * time.Second

type execRunner struct{}

// NewRunner returns the real Runner backed by os/exec.
func NewRunner() Runner { return execRunner{} }

func (execRunner) Run(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), invokeTimeout)
	defer cancel()
	if out, err := exec.CommandContext(ctx, name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (execRunner) Output(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), invokeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

func (execRunner) Has(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
