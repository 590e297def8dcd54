package dispatch

import (
	"bytes"
	"strings"
	"testing"

	dispatchio "github.com/dzonerzy/go-dispatch/io"
)

func dispatchTestSpec(t *testing.T) *CLISpec {
	t.Helper()
	spec := New("filetool", "a small file utility").
		WithVersion("1.2.0").
		RootFlag("version", TypeBool, "print version").Done().
		Command("copy", "copy a file").
		Flag("verbose", TypeBool, "noisy output").Short("v").Back().
		Arg("source", TypeString, "").Required().Back().
		Arg("dest", TypeString, "").Default(StringValue(".")).Back().
		Spec()
	if err := spec.Finalize(); err != nil {
		t.Fatal(err)
	}
	return spec
}

type capture struct {
	out, err bytes.Buffer
}

func newTestDispatcher(t *testing.T, spec *CLISpec, h Handler) (*Dispatcher, *capture) {
	t.Helper()
	c := &capture{}
	m := dispatchio.New().WithOut(&c.out).WithErr(&c.err).NoColor()
	return NewDispatcher(spec, h).WithIO(m), c
}

func TestDispatchRoutesToHandler(t *testing.T) {
	spec := dispatchTestSpec(t)

	var gotCommand []string
	var gotSource string
	h := HandlerFunc(func(command []string, input *ParseResult) Outcome {
		gotCommand = command
		gotSource, _ = input.GetArgString("source")
		return OK()
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy a.txt out/")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, c.err.String())
	}
	if len(gotCommand) != 1 || gotCommand[0] != "copy" {
		t.Errorf("command = %v", gotCommand)
	}
	if gotSource != "a.txt" {
		t.Errorf("source = %q", gotSource)
	}
}

func TestDispatchHandlerExitCode(t *testing.T) {
	spec := dispatchTestSpec(t)
	h := HandlerFunc(func([]string, *ParseResult) Outcome {
		return Fail(3, "disk full")
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy a.txt")
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.Contains(c.err.String(), "Error: disk full") {
		t.Errorf("stderr = %q", c.err.String())
	}
}

func TestDispatchParseFailureExitCode(t *testing.T) {
	spec := dispatchTestSpec(t)
	called := false
	h := HandlerFunc(func([]string, *ParseResult) Outcome {
		called = true
		return OK()
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if called {
		t.Error("handler must not run on parse failure")
	}
	if !strings.Contains(c.err.String(), "Missing required argument 'source'") {
		t.Errorf("stderr = %q", c.err.String())
	}
}

func TestDispatchUnknownCommandPrintsHelp(t *testing.T) {
	spec := dispatchTestSpec(t)
	d, c := newTestDispatcher(t, spec, nil)

	code := d.RunLine("cpoy a.txt")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(c.err.String(), "Command 'cpoy' not found") {
		t.Errorf("stderr = %q", c.err.String())
	}
	if !strings.Contains(c.err.String(), "Did you mean 'copy'?") {
		t.Errorf("stderr = %q", c.err.String())
	}
	if !strings.Contains(c.err.String(), "Usage: filetool") {
		t.Errorf("resolution failures should render help, stderr = %q", c.err.String())
	}
}

func TestDispatchHelpShortCircuit(t *testing.T) {
	spec := dispatchTestSpec(t)
	called := false
	h := HandlerFunc(func([]string, *ParseResult) Outcome {
		called = true
		return OK()
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy --help")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if called {
		t.Error("handler must not run when help fires")
	}
	out := c.out.String()
	if !strings.Contains(out, "Usage: filetool copy") {
		t.Errorf("stdout = %q", out)
	}
}

func TestDispatchEmptyArgsRenderProgramHelp(t *testing.T) {
	spec := dispatchTestSpec(t)

	// An empty invocation is a resolve failure; the failure path still
	// gives the user the program help.
	d, c := newTestDispatcher(t, spec, nil)
	code := d.RunArgs(nil)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(c.err.String(), "No command provided") {
		t.Errorf("stderr = %q", c.err.String())
	}
	if !strings.Contains(c.err.String(), "Usage: filetool") {
		t.Errorf("stderr = %q", c.err.String())
	}
}

func TestDispatchRootFlagInvocation(t *testing.T) {
	spec := dispatchTestSpec(t)

	var gotCommand []string
	h := HandlerFunc(func(command []string, _ *ParseResult) Outcome {
		gotCommand = command
		return OK()
	})
	d, _ := newTestDispatcher(t, spec, h)

	code := d.RunLine("filetool --version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if len(gotCommand) != 1 || gotCommand[0] != "version" {
		t.Errorf("command = %v, want [version]", gotCommand)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	spec := dispatchTestSpec(t)
	h := HandlerFunc(func([]string, *ParseResult) Outcome {
		panic("boom")
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy a.txt")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	stderr := c.err.String()
	if !strings.Contains(stderr, "command 'copy' failed") {
		t.Errorf("stderr = %q", stderr)
	}
	// The panic payload stays on the logger side channel.
	if !strings.Contains(stderr, "boom") {
		t.Errorf("cause missing from log output: %q", stderr)
	}
	if strings.Contains(stderr, "Error: boom") {
		t.Errorf("cause leaked into the user-facing message: %q", stderr)
	}
}

func TestDispatchNotImplementedNormalized(t *testing.T) {
	spec := dispatchTestSpec(t)
	h := HandlerFunc(func([]string, *ParseResult) Outcome {
		return NotImplemented()
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy a.txt")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(c.err.String(), "command 'copy' is not implemented") {
		t.Errorf("stderr = %q", c.err.String())
	}
}

func TestDispatchInvalidArgumentsNormalized(t *testing.T) {
	spec := dispatchTestSpec(t)
	h := HandlerFunc(func([]string, *ParseResult) Outcome {
		return InvalidArguments("source and dest are the same file")
	})
	d, c := newTestDispatcher(t, spec, h)

	code := d.RunLine("copy a.txt")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(c.err.String(), "Error: source and dest are the same file") {
		t.Errorf("stderr = %q", c.err.String())
	}
}

func TestDispatchNilHandler(t *testing.T) {
	spec := dispatchTestSpec(t)
	d, c := newTestDispatcher(t, spec, nil)

	code := d.RunLine("copy a.txt")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(c.err.String(), "not implemented") {
		t.Errorf("stderr = %q", c.err.String())
	}
}

func TestOutcomeFailed(t *testing.T) {
	if OK().Failed() || OKWith(42).Failed() {
		t.Error("success outcomes must not report failure")
	}
	if !Fail(1, "x").Failed() || !NotImplemented().Failed() || !InvalidArguments("x").Failed() {
		t.Error("error outcomes must report failure")
	}
}
