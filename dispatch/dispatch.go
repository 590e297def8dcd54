package dispatch

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	dispatchio "github.com/dzonerzy/go-dispatch/io"
)

// OutcomeKind tags the variants a handler can produce. The dispatcher
// pattern-matches on this instead of catching panics as control flow;
// panics are still recovered at the boundary as a last resort.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeValue
	OutcomeError
	OutcomeNotImplemented
	OutcomeInvalidArguments
)

// Outcome is the uniform result of a dispatch: either success
// (optionally with a payload) or an error with a process exit code and
// a displayable reason.
type Outcome struct {
	Kind    OutcomeKind
	Code    int
	Message string
	Payload any
}

// OK returns a plain success outcome.
func OK() Outcome { return Outcome{Kind: OutcomeOK} }

// OKWith returns a success outcome carrying a payload.
func OKWith(payload any) Outcome { return Outcome{Kind: OutcomeValue, Payload: payload} }

// Fail returns an error outcome with the given exit code and reason.
func Fail(code int, message string) Outcome {
	return Outcome{Kind: OutcomeError, Code: code, Message: message}
}

// NotImplemented marks a command path the handler does not cover.
func NotImplemented() Outcome { return Outcome{Kind: OutcomeNotImplemented} }

// InvalidArguments marks handler-side rejection of the parsed input.
func InvalidArguments(message string) Outcome {
	return Outcome{Kind: OutcomeInvalidArguments, Message: message}
}

// Failed reports whether the outcome ends the invocation with an error.
func (o Outcome) Failed() bool { return o.Kind != OutcomeOK && o.Kind != OutcomeValue }

// Handler is the capability the dispatcher routes resolved commands
// to. It must be total over the declared tree; a NotImplemented
// outcome (or a panic) is tolerated and converted to the standard
// error outcome.
type Handler interface {
	Handle(command []string, input *ParseResult) Outcome
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(command []string, input *ParseResult) Outcome

// Handle calls the function.
func (f HandlerFunc) Handle(command []string, input *ParseResult) Outcome {
	return f(command, input)
}

// Dispatcher routes a completed ParseResult to help rendering, a
// root-flag invocation, or the command handler. One Dispatcher may
// serve any number of invocations; it holds no per-invocation state.
type Dispatcher struct {
	spec    *CLISpec
	handler Handler
	io      *dispatchio.IOManager
	log     *dispatchio.Logger
}

// NewDispatcher wires a finalized spec to a handler with default IO.
func NewDispatcher(spec *CLISpec, handler Handler) *Dispatcher {
	m := dispatchio.New()
	return &Dispatcher{
		spec:    spec,
		handler: handler,
		io:      m,
		log:     dispatchio.NewLogger(m),
	}
}

// WithIO replaces the IO manager (and rebinds the logger) for tests
// and embedders.
func (d *Dispatcher) WithIO(m *dispatchio.IOManager) *Dispatcher {
	d.io = m
	d.log = dispatchio.NewLogger(m)
	return d
}

// IO returns the dispatcher's IO manager for fluent configuration.
func (d *Dispatcher) IO() *dispatchio.IOManager { return d.io }

// Dispatch decides the terminal state for a parsed invocation, in
// priority order: help, root-flag invocation, help fallback, command
// handler. It never returns a raw handler failure; everything is
// normalized into an Outcome.
func (d *Dispatcher) Dispatch(result *ParseResult) Outcome {
	if result.Help() {
		d.renderHelp(result.Command)
		return OK()
	}

	if len(result.Command) == 0 {
		if name := result.activeRootFlag(d.spec); name != "" {
			return d.invoke([]string{name}, result)
		}
		d.renderHelp(nil)
		return OK()
	}

	return d.invoke(result.Command, result)
}

// invoke runs the handler with a recovery boundary. Handler failures
// are observed, categorized, and converted exactly once; the raw cause
// goes to the logger side channel with an invocation ID and the
// command path, never into the user-facing message.
func (d *Dispatcher) invoke(command []string, input *ParseResult) (out Outcome) {
	path := strings.Join(command, " ")
	invocation := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error("handler panic [invocation %s] command %q: %v", invocation, path, r)
			out = Fail(1, fmt.Sprintf("command '%s' failed", path))
		}
	}()

	if d.handler == nil {
		d.log.Error("no handler registered [invocation %s] command %q", invocation, path)
		return Fail(1, fmt.Sprintf("command '%s' is not implemented", path))
	}

	out = d.handler.Handle(command, input)
	switch out.Kind {
	case OutcomeNotImplemented:
		d.log.Error("handler not implemented [invocation %s] command %q", invocation, path)
		return Fail(1, fmt.Sprintf("command '%s' is not implemented", path))
	case OutcomeInvalidArguments:
		d.log.Error("handler rejected arguments [invocation %s] command %q: %s", invocation, path, out.Message)
		msg := out.Message
		if msg == "" {
			msg = fmt.Sprintf("invalid arguments for command '%s'", path)
		}
		return Fail(1, msg)
	case OutcomeOK, OutcomeValue, OutcomeError:
		return out
	default:
		return out
	}
}

// RunLine parses a pre-joined command line, dispatches it, and returns
// the process exit code: 0 on success, the handler-declared code on
// handler error, 1 on parse failure with every diagnostic printed.
func (d *Dispatcher) RunLine(line string) int {
	result, err := d.spec.ParseLine(line)
	return d.finish(result, err)
}

// RunArgs is RunLine for an argv-style token sequence.
func (d *Dispatcher) RunArgs(argv []string) int {
	result, err := d.spec.ParseArgs(argv)
	return d.finish(result, err)
}

func (d *Dispatcher) finish(result *ParseResult, err error) int {
	if err != nil {
		d.printParseFailure(err)
		return 1
	}
	out := d.Dispatch(result)
	if !out.Failed() {
		return 0
	}
	if out.Message != "" {
		fmt.Fprintln(d.io.Err(), d.io.ErrorText("Error: "+out.Message))
	}
	code := out.Code
	if code == 0 {
		code = 1
	}
	return code
}

func (d *Dispatcher) printParseFailure(err error) {
	if pe, ok := err.(*ParseError); ok {
		for _, msg := range pe.Messages() {
			fmt.Fprintln(d.io.Err(), d.io.ErrorText("Error: "+msg))
		}
		// Resolution failures get contextual help by convention.
		if pe.Kind() == ErrResolve {
			fmt.Fprintln(d.io.Err())
			d.renderHelpTo(d.io.Err(), nil)
		}
		return
	}
	fmt.Fprintln(d.io.Err(), d.io.ErrorText("Error: "+err.Error()))
}
