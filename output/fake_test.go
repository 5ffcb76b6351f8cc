package output

import (
	"errors"
	"fmt"
	"strings"
)

var errNope = errors.New("simulated failure")

// fakeRunner records invocations and simulates installed binaries and
// failures.
type fakeRunner struct {
	installed map[string]bool
	fail      map[string]error
	outputs   map[string]string
	calls     []string
}

func newFakeRunner(installed ...string) *fakeRunner {
	r := &fakeRunner{
		installed: map[string]bool{},
		fail:      map[string]error{},
		outputs:   map[string]string{},
	}
	for _, name := range installed {
		r.installed[name] = true
	}
	return r
}

func (r *fakeRunner) record(name string, args []string) string {
	call := name
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	r.calls = append(r.calls, call)
	return call
}

func (r *fakeRunner) Run(name string, args ...string) error {
	r.record(name, args)
	if err, ok := r.fail[name]; ok {
		return err
	}
	return nil
}

func (r *fakeRunner) Output(name string, args ...string) (string, error) {
	call := r.record(name, args)
	if err, ok := r.fail[name]; ok {
		return "", err
	}
	if out, ok := r.outputs[call]; ok {
		return out, nil
	}
	if out, ok := r.outputs[name]; ok {
		return out, nil
	}
	return "", fmt.Errorf("%s: no fake output", name)
}

func (r *fakeRunner) Has(name string) bool { return r.installed[name] }

type fakeClipboard struct {
	contents string
	history  []string
	readErr  error
	writeErr error
}

func (c *fakeClipboard) Read() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.contents, nil
}

func (c *fakeClipboard) Write(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.contents = text
	c.history = append(c.history, text)
	return nil
}

type fakeKeyboard struct {
	typed []string
	err   error
}

func (k *fakeKeyboard) Type(text string) error {
	if k.err != nil {
		return k.err
	}
	k.typed = append(k.typed, text)
	return nil
}
