package dispatch

import (
	"strings"

	"github.com/dzonerzy/go-dispatch/internal/fuzzy"
)

// maxSuggestionDistance bounds the edit distance for "Did you mean"
// hints on unknown commands.
const maxSuggestionDistance = 2

// Resolution is the output of walking the command tree: the command
// path from root to the matched node, the node itself, and every token
// the walk did not consume (flags and positional candidates,
// interleaved).
type Resolution struct {
	Path      []string
	Node      *CommandNode
	Remaining []string

	// RootOnly marks a root-flag-only invocation: the first token was
	// the program name and Node is a synthetic node carrying only the
	// program's root flags.
	RootOnly bool
}

// allFlagShaped reports whether every token starts with a dash. An
// empty slice qualifies.
func allFlagShaped(tokens []string) bool {
	for _, t := range tokens {
		if !strings.HasPrefix(t, "-") {
			return false
		}
	}
	return true
}

// Resolve walks tokens down the command tree. Matching is an exact
// linear name scan at each level; descent stops at the first token
// that is flag-like, exhausted, or not a subcommand name.
func Resolve(tokens []string, spec *CLISpec) (*Resolution, error) {
	if len(tokens) == 0 {
		return nil, parseFailure(ErrResolve, newDiagnostic(ErrResolve, "No command provided"))
	}

	first := tokens[0]

	// A leading program-name token selects no command by itself, unless
	// a root command shadows the program name. When only flag-shaped
	// tokens follow, the invocation targets the program's own flag set;
	// otherwise descent continues past the program name.
	if first == spec.Name && spec.findCommand(first) == nil {
		rest := tokens[1:]
		if allFlagShaped(rest) && len(spec.RootFlags) > 0 {
			return &Resolution{
				Node:      &CommandNode{Name: spec.Name, Description: spec.Description, Flags: spec.RootFlags},
				Remaining: rest,
				RootOnly:  true,
			}, nil
		}
		if len(rest) == 0 {
			return nil, parseFailure(ErrResolve, newDiagnostic(ErrResolve, "No command provided"))
		}
		tokens = rest
		first = tokens[0]
	}

	node := spec.findCommand(first)
	if node == nil {
		d := newDiagnostic(ErrResolve, "Command '%s' not found", first)
		names := make([]string, 0, len(spec.Commands))
		for _, c := range spec.Commands {
			names = append(names, c.Name)
		}
		d.Suggestion = fuzzy.FindBestCommand(first, names, maxSuggestionDistance)
		return nil, parseFailure(ErrResolve, d)
	}

	path := []string{first}
	rest := tokens[1:]
	for len(rest) > 0 {
		next := rest[0]
		if strings.HasPrefix(next, "-") {
			break
		}
		sub := node.findSubcommand(next)
		if sub == nil {
			break
		}
		node = sub
		path = append(path, next)
		rest = rest[1:]
	}

	return &Resolution{Path: path, Node: node, Remaining: rest}, nil
}
