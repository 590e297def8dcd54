package dispatch

// New starts a fluent CLISpec declaration. The builder is plain local
// state: nothing is shared process-wide, and the tree it produces is
// the same CommandNode data a caller could write as struct literals.
// Call Finalize (directly or through Parse) before first use.
func New(name, description string) *CLISpec {
	return &CLISpec{Name: name, Description: description}
}

// WithVersion sets the program version string.
func (s *CLISpec) WithVersion(version string) *CLISpec {
	s.Version = version
	return s
}

// RootFlag declares a flag attached to the program itself, matched when
// no subcommand token is present.
func (s *CLISpec) RootFlag(name string, t ValueType, description string) *FlagBuilder {
	f := &FlagSpec{Name: name, Type: t, Description: description}
	s.RootFlags = append(s.RootFlags, f)
	return &FlagBuilder{flag: f, spec: s}
}

// Command declares a root command and descends into it.
func (s *CLISpec) Command(name, description string) *CommandBuilder {
	node := &CommandNode{Name: name, Description: description}
	s.Commands = append(s.Commands, node)
	return &CommandBuilder{node: node, spec: s}
}

// CommandBuilder builds one CommandNode. Parent pointers form the
// builder stack, so nested declarations pop back out with Parent/Spec.
type CommandBuilder struct {
	node   *CommandNode
	spec   *CLISpec
	parent *CommandBuilder
}

// Command declares a subcommand and descends into it.
func (b *CommandBuilder) Command(name, description string) *CommandBuilder {
	node := &CommandNode{Name: name, Description: description}
	b.node.Subcommands = append(b.node.Subcommands, node)
	return &CommandBuilder{node: node, spec: b.spec, parent: b}
}

// Flag declares a flag on this command.
func (b *CommandBuilder) Flag(name string, t ValueType, description string) *FlagBuilder {
	f := &FlagSpec{Name: name, Type: t, Description: description}
	b.node.Flags = append(b.node.Flags, f)
	return &FlagBuilder{flag: f, cmd: b}
}

// Arg declares a positional argument on this command. Declaration
// order is binding order.
func (b *CommandBuilder) Arg(name string, t ValueType, description string) *ArgBuilder {
	a := &ArgSpec{Name: name, Type: t, Description: description}
	b.node.Args = append(b.node.Args, a)
	return &ArgBuilder{arg: a, cmd: b}
}

// Parent pops back to the enclosing command builder. Panics at the
// root, where Spec is the way out.
func (b *CommandBuilder) Parent() *CommandBuilder {
	if b.parent == nil {
		panic("dispatch: Parent called on a root command builder")
	}
	return b.parent
}

// Spec returns to the top-level CLISpec for continued chaining.
func (b *CommandBuilder) Spec() *CLISpec { return b.spec }

// FlagBuilder configures one FlagSpec. Exactly one of cmd/spec is set,
// depending on whether the flag belongs to a command or the program.
type FlagBuilder struct {
	flag *FlagSpec
	cmd  *CommandBuilder
	spec *CLISpec
}

// Short sets the single-character alias.
func (f *FlagBuilder) Short(short string) *FlagBuilder {
	f.flag.Short = short
	return f
}

// Required marks the flag as required.
func (f *FlagBuilder) Required() *FlagBuilder {
	f.flag.Required = true
	return f
}

// Default declares the value used when the flag is absent. The value
// is checked against the declared type during Finalize.
func (f *FlagBuilder) Default(v Value) *FlagBuilder {
	f.flag.Default = &v
	return f
}

// Back returns to the command builder that declared this flag.
func (f *FlagBuilder) Back() *CommandBuilder {
	if f.cmd == nil {
		panic("dispatch: Back called on a root flag; use Done")
	}
	return f.cmd
}

// Done returns to the CLISpec for root flags.
func (f *FlagBuilder) Done() *CLISpec {
	if f.spec != nil {
		return f.spec
	}
	return f.cmd.spec
}

// ArgBuilder configures one ArgSpec.
type ArgBuilder struct {
	arg *ArgSpec
	cmd *CommandBuilder
}

// Required marks the argument as required.
func (a *ArgBuilder) Required() *ArgBuilder {
	a.arg.Required = true
	return a
}

// Default declares the value an optional argument resolves to when no
// positional token binds to it.
func (a *ArgBuilder) Default(v Value) *ArgBuilder {
	a.arg.Default = &v
	return a
}

// Back returns to the command builder that declared this argument.
func (a *ArgBuilder) Back() *CommandBuilder { return a.cmd }
