package dispatch

import "fmt"

// FlagSpec declares one named option. Short is an optional single-rune
// alias spelled as a one-character string. Default must agree with
// Type; boolean flags default to false when no default is declared.
type FlagSpec struct {
	Name        string
	Short       string
	Type        ValueType
	Required    bool
	Default     *Value
	Description string
}

// ArgSpec declares one positional argument. Ordering within a node is
// significant: positional tokens bind left to right. A list-typed arg
// must be the last one declared and consumes every remaining
// positional token.
type ArgSpec struct {
	Name        string
	Type        ValueType
	Required    bool
	Default     *Value
	Description string
}

// CommandNode is one node of the static command tree. Names are unique
// among siblings; flag names, short aliases, and arg names are unique
// within the node. The tree is built once, validated by Finalize, and
// immutable afterwards.
type CommandNode struct {
	Name        string
	Description string
	Subcommands []*CommandNode
	Flags       []*FlagSpec
	Args        []*ArgSpec
}

// findSubcommand does an exact-name linear scan. Names are unique per
// node by construction, so no tie-break is needed.
func (n *CommandNode) findSubcommand(name string) *CommandNode {
	for _, sub := range n.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (n *CommandNode) findFlag(name string) *FlagSpec {
	for _, f := range n.Flags {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// CLISpec is the top-level declaration of a program: its root command
// list plus flags attached to the program itself. Constructed once at
// program start and read-only for the process lifetime, so concurrent
// invocations may share it freely.
type CLISpec struct {
	Name        string
	Version     string
	Description string
	Commands    []*CommandNode
	RootFlags   []*FlagSpec

	finalized bool
}

func (s *CLISpec) findCommand(name string) *CommandNode {
	for _, c := range s.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Finalize validates the construction invariants and injects the
// implicit help flag into every node not itself named "help",
// recursively, plus the root flag set. Duplicate names, type-mismatched
// defaults, and misplaced list args are construction-time errors; none
// of them can surface at parse time. Finalize is idempotent.
func (s *CLISpec) Finalize() error {
	if s.finalized {
		return nil
	}
	if s.Name == "" {
		return newSpecError("program name is required")
	}

	s.RootFlags = injectHelpFlag(s.RootFlags)
	if err := validateFlags("program "+s.Name, s.RootFlags); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, c := range s.Commands {
		if seen[c.Name] {
			return newSpecError("duplicate command %q", c.Name)
		}
		seen[c.Name] = true
		if err := finalizeNode(c); err != nil {
			return err
		}
	}
	s.finalized = true
	return nil
}

func finalizeNode(n *CommandNode) error {
	if n.Name == "" {
		return newSpecError("command name is required")
	}
	if n.Name != "help" {
		n.Flags = injectHelpFlag(n.Flags)
	}
	if err := validateFlags("command "+n.Name, n.Flags); err != nil {
		return err
	}
	if err := validateArgs(n); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, sub := range n.Subcommands {
		if seen[sub.Name] {
			return newSpecError("duplicate subcommand %q under %q", sub.Name, n.Name)
		}
		seen[sub.Name] = true
		if err := finalizeNode(sub); err != nil {
			return err
		}
	}
	return nil
}

// injectHelpFlag appends the implicit help flag unless one is already
// declared.
func injectHelpFlag(flags []*FlagSpec) []*FlagSpec {
	for _, f := range flags {
		if f.Name == "help" {
			return flags
		}
	}
	short := "h"
	for _, f := range flags {
		if f.Short == "h" {
			short = ""
			break
		}
	}
	return append(flags, &FlagSpec{
		Name:        "help",
		Short:       short,
		Type:        TypeBool,
		Description: "Print help information",
	})
}

func validateFlags(owner string, flags []*FlagSpec) error {
	names := map[string]bool{}
	shorts := map[string]bool{}
	for _, f := range flags {
		if f.Name == "" {
			return newSpecError("%s: flag name is required", owner)
		}
		if names[f.Name] {
			return newSpecError("%s: duplicate flag %q", owner, f.Name)
		}
		names[f.Name] = true
		if f.Short != "" {
			if len(f.Short) != 1 {
				return newSpecError("%s: short alias %q of flag %q must be one character", owner, f.Short, f.Name)
			}
			if shorts[f.Short] {
				return newSpecError("%s: duplicate short alias %q", owner, f.Short)
			}
			shorts[f.Short] = true
		}
		if err := validateDefault(owner, "flag", f.Name, f.Type, f.Required, f.Default); err != nil {
			return err
		}
	}
	return nil
}

func validateArgs(n *CommandNode) error {
	names := map[string]bool{}
	for i, a := range n.Args {
		if a.Name == "" {
			return newSpecError("command %s: argument name is required", n.Name)
		}
		if names[a.Name] {
			return newSpecError("command %s: duplicate argument %q", n.Name, a.Name)
		}
		names[a.Name] = true
		if a.Type.Kind == KindList && i != len(n.Args)-1 {
			return newSpecError("command %s: list argument %q must be the last positional", n.Name, a.Name)
		}
		if err := validateDefault("command "+n.Name, "argument", a.Name, a.Type, a.Required, a.Default); err != nil {
			return err
		}
	}
	return nil
}

// validateDefault enforces that a declared default matches the declared
// type. Optional booleans implicitly default to false; optional args of
// any type may omit a default and resolve to absence.
func validateDefault(owner, slot, name string, t ValueType, required bool, def *Value) error {
	if def == nil {
		if required || t.Kind == KindBool {
			return nil
		}
		if slot == "flag" {
			return newSpecError("%s: optional %s %q needs a default", owner, slot, name)
		}
		return nil
	}
	if required {
		return newSpecError("%s: required %s %q cannot declare a default", owner, slot, name)
	}
	if def.Type.Kind != t.Kind {
		return newSpecError("%s: default for %s %q is %s, declared type is %s",
			owner, slot, name, def.Type.Kind, t.Kind)
	}
	return nil
}

// SpecError reports a construction-time violation. It is distinct from
// ParseError: spec errors are programmer mistakes, parse errors are
// end-user input mistakes.
type SpecError struct {
	Message string
}

func (e *SpecError) Error() string { return e.Message }

func newSpecError(format string, args ...any) *SpecError {
	return &SpecError{Message: fmt.Sprintf(format, args...)}
}
