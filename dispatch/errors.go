package dispatch

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a diagnostic by the pipeline stage that
// produced it. The category drives exit-code mapping and the
// help-on-error convention at the runner boundary; the end-user
// contract is the message text.
type ErrorKind string

const (
	ErrTokenize ErrorKind = "tokenize"
	ErrResolve  ErrorKind = "resolve"
	ErrMatch    ErrorKind = "match"
	ErrCoerce   ErrorKind = "coerce"
)

// Diagnostic is a single human-readable parse diagnostic.
type Diagnostic struct {
	Kind       ErrorKind
	Message    string
	Suggestion string // optional "Did you mean ..." hint
}

func (d *Diagnostic) Error() string {
	if d.Suggestion != "" {
		return d.Message + ". Did you mean '" + d.Suggestion + "'?"
	}
	return d.Message
}

func newDiagnostic(kind ErrorKind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ParseError is the single failure value of the parsing pipeline: a
// non-empty ordered list of diagnostics. Parse-time failures are
// always returned as a value, never raised past the parse boundary.
type ParseError struct {
	Diags []*Diagnostic
}

func (e *ParseError) Error() string {
	msgs := e.Messages()
	return strings.Join(msgs, "; ")
}

// Messages returns every diagnostic rendered as display text, in the
// order the pipeline produced them.
func (e *ParseError) Messages() []string {
	msgs := make([]string, 0, len(e.Diags))
	for _, d := range e.Diags {
		msgs = append(msgs, d.Error())
	}
	return msgs
}

// Kind returns the category of the first diagnostic. Aggregated
// failures share a stage, so the first entry is representative.
func (e *ParseError) Kind() ErrorKind {
	if len(e.Diags) == 0 {
		return ErrMatch
	}
	return e.Diags[0].Kind
}

// parseFailure wraps one or more diagnostics into a ParseError. Plain
// errors from lower layers are promoted to diagnostics of the given
// kind so the caller always sees the list form.
func parseFailure(kind ErrorKind, errs ...error) *ParseError {
	pe := &ParseError{}
	for _, err := range errs {
		switch v := err.(type) {
		case *Diagnostic:
			pe.Diags = append(pe.Diags, v)
		case *ParseError:
			pe.Diags = append(pe.Diags, v.Diags...)
		default:
			pe.Diags = append(pe.Diags, &Diagnostic{Kind: kind, Message: err.Error()})
		}
	}
	return pe
}
