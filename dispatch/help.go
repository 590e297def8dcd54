package dispatch

import (
	"fmt"
	"io"
	"strings"
)

// styler abstracts the optional color treatment help output gets when
// rendered through an IOManager. A nil styler renders plain text.
type styler interface {
	Heading(string) string
	Emphasis(string) string
}

// FormatHelp renders plain help text for the node addressed by path,
// or for the program itself when path is empty. Lookup reuses the
// resolver's exact-name walk; an unknown path falls back to program
// help.
func FormatHelp(spec *CLISpec, path []string) string {
	return formatHelp(spec, path, nil)
}

func formatHelp(spec *CLISpec, path []string, st styler) string {
	_ = spec.Finalize()

	heading := func(s string) string { return s }
	emph := func(s string) string { return s }
	if st != nil {
		heading = st.Heading
		emph = st.Emphasis
	}

	node, fullPath := lookupPath(spec, path)

	var b strings.Builder

	b.WriteString(heading("Usage:") + " " + usageLine(spec, node, fullPath) + "\n")

	description := spec.Description
	var flags []*FlagSpec
	var args []*ArgSpec
	var subs []*CommandNode
	if node != nil {
		description = node.Description
		flags = node.Flags
		args = node.Args
		subs = node.Subcommands
	} else {
		flags = spec.RootFlags
		subs = spec.Commands
	}

	if description != "" {
		b.WriteString("\n" + description + "\n")
	}

	if len(subs) > 0 {
		b.WriteString("\n" + heading("Commands:") + "\n")
		width := 0
		for _, sub := range subs {
			if len(sub.Name) > width {
				width = len(sub.Name)
			}
		}
		for _, sub := range subs {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				pad(emph(sub.Name), len(sub.Name), width), orNoDescription(sub.Description)))
		}
	}

	if len(args) > 0 {
		b.WriteString("\n" + heading("Arguments:") + "\n")
		width := 0
		for _, a := range args {
			if len(a.Name) > width {
				width = len(a.Name)
			}
		}
		for _, a := range args {
			b.WriteString(fmt.Sprintf("  %s  Type: %s\n",
				pad(emph(a.Name), len(a.Name), width), a.Type))
		}
	}

	if len(flags) > 0 {
		b.WriteString("\n" + heading("Options:") + "\n")
		lines := make([]string, 0, len(flags))
		widths := make([]int, 0, len(flags))
		width := 0
		for _, f := range flags {
			line, plain := optionLine(f, emph)
			lines = append(lines, line)
			widths = append(widths, plain)
			if plain > width {
				width = plain
			}
		}
		for i, f := range flags {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				pad(lines[i], widths[i], width), orNoDescription(f.Description)))
		}
	}

	return b.String()
}

// usageLine builds the one-line usage synopsis. The OPTIONS, COMMAND,
// and positional segments appear only when the node declares flags,
// subcommands, or args respectively.
func usageLine(spec *CLISpec, node *CommandNode, path []string) string {
	parts := []string{spec.Name}
	parts = append(parts, path...)

	var flags []*FlagSpec
	var args []*ArgSpec
	var subs []*CommandNode
	if node != nil {
		flags, args, subs = node.Flags, node.Args, node.Subcommands
	} else {
		flags, subs = spec.RootFlags, spec.Commands
	}

	if len(flags) > 0 {
		parts = append(parts, "[OPTIONS]")
	}
	if len(subs) > 0 {
		parts = append(parts, "[COMMAND]")
	}
	for _, a := range args {
		if a.Required {
			parts = append(parts, "<"+a.Name+">")
		} else {
			parts = append(parts, "["+a.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}

// optionLine renders "-s, --name TYPE" and reports its unstyled width
// so descriptions align regardless of color escapes.
func optionLine(f *FlagSpec, emph func(string) string) (line string, width int) {
	var plain strings.Builder
	var styled strings.Builder
	if f.Short != "" {
		plain.WriteString("-" + f.Short + ", ")
		styled.WriteString(emph("-"+f.Short) + ", ")
	}
	plain.WriteString("--" + f.Name)
	styled.WriteString(emph("--" + f.Name))
	if f.Type.Kind != KindBool {
		t := " " + strings.ToUpper(f.Type.Kind.String())
		plain.WriteString(t)
		styled.WriteString(t)
	}
	return styled.String(), plain.Len()
}

// lookupPath walks the command tree by exact names, mirroring Resolve.
// Unknown segments abort the walk and fall back to program help.
func lookupPath(spec *CLISpec, path []string) (*CommandNode, []string) {
	if len(path) == 0 {
		return nil, nil
	}
	node := spec.findCommand(path[0])
	if node == nil {
		return nil, nil
	}
	walked := []string{path[0]}
	for _, name := range path[1:] {
		sub := node.findSubcommand(name)
		if sub == nil {
			break
		}
		node = sub
		walked = append(walked, name)
	}
	return node, walked
}

// pad right-pads a possibly styled string to the target plain width.
func pad(s string, plainWidth, target int) string {
	if plainWidth >= target {
		return s
	}
	return s + strings.Repeat(" ", target-plainWidth)
}

func orNoDescription(s string) string {
	if s == "" {
		return "No description"
	}
	return s
}

// renderHelp writes styled help for the given command path to stdout.
func (d *Dispatcher) renderHelp(path []string) {
	d.renderHelpTo(d.io.Out(), path)
}

func (d *Dispatcher) renderHelpTo(w io.Writer, path []string) {
	fmt.Fprint(w, formatHelp(d.spec, path, d.io))
}
