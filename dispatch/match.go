package dispatch

import "strings"

// MatchResult is the typed outcome of binding the remaining tokens
// against a node's declared flags and arguments.
type MatchResult struct {
	Flags map[string]Value
	Args  map[string]Value

	// Single mirrors the node's one argument value when exactly one
	// ArgSpec is declared, so handlers can read it without indexing
	// into Args.
	Single *Value
}

// Match classifies the remaining tokens into flags and positional
// arguments in one left-to-right pass. Flags may appear before,
// between, or after positional tokens. Root flags are matched in
// addition to the node's own flags. Policy choices, kept deliberately:
// missing required flags aggregate into one diagnostic, positional
// errors fail fast, and any coercion failure fails fast.
func Match(remaining []string, node *CommandNode, rootFlags []*FlagSpec) (*MatchResult, error) {
	// The help short-circuit is a full-sequence scan evaluated before
	// anything is consumed. It outranks every other error, including
	// malformed tokens earlier in the sequence.
	for _, t := range remaining {
		if t == "--help" || t == "-h" {
			return &MatchResult{
				Flags: map[string]Value{"help": BoolValue(true)},
				Args:  map[string]Value{},
			}, nil
		}
	}

	res := &MatchResult{
		Flags: make(map[string]Value),
		Args:  make(map[string]Value),
	}
	var positional []string

	for i := 0; i < len(remaining); i++ {
		t := remaining[i]
		switch {
		case strings.HasPrefix(t, "--"):
			consumed, err := matchFlagToken(res, t[2:], remaining, i, node, rootFlags, lookupLong)
			if err != nil {
				return nil, err
			}
			i += consumed
		case strings.HasPrefix(t, "-") && t != "-" && len(t) > 1:
			consumed, err := matchFlagToken(res, t[1:], remaining, i, node, rootFlags, lookupShort)
			if err != nil {
				return nil, err
			}
			i += consumed
		default:
			positional = append(positional, t)
		}
	}

	if err := applyFlagDefaults(res, node, rootFlags); err != nil {
		return nil, err
	}
	if err := checkRequiredFlags(res, node); err != nil {
		return nil, err
	}
	if err := bindPositionals(res, positional, node); err != nil {
		return nil, err
	}
	return res, nil
}

// lookupLong finds a flag by its long name, searching the node's flags
// first and the root flag set second.
func lookupLong(name string, node *CommandNode, rootFlags []*FlagSpec) *FlagSpec {
	if f := node.findFlag(name); f != nil {
		return f
	}
	for _, f := range rootFlags {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func lookupShort(short string, node *CommandNode, rootFlags []*FlagSpec) *FlagSpec {
	for _, f := range node.Flags {
		if f.Short != "" && f.Short == short {
			return f
		}
	}
	for _, f := range rootFlags {
		if f.Short != "" && f.Short == short {
			return f
		}
	}
	return nil
}

// matchFlagToken handles one flag-shaped token. body is the token with
// its dash prefix removed. Returns how many extra tokens were consumed
// (0 or 1, for a separate value token). Duplicate occurrences of the
// same flag overwrite earlier ones: last occurrence wins. Unknown
// flags are ignored, not errors.
func matchFlagToken(
	res *MatchResult,
	body string,
	remaining []string,
	pos int,
	node *CommandNode,
	rootFlags []*FlagSpec,
	lookup func(string, *CommandNode, []*FlagSpec) *FlagSpec,
) (int, error) {
	name, rawValue, hasValue := strings.Cut(body, "=")

	spec := lookup(name, node, rootFlags)
	if spec == nil {
		return 0, nil
	}

	if hasValue {
		v, err := coerceFlagValue(rawValue, spec)
		if err != nil {
			return 0, parseFailure(ErrCoerce, err)
		}
		res.Flags[spec.Name] = v
		return 0, nil
	}

	// No explicit value: booleans flip to true, everything else takes
	// the next token.
	if spec.Type.Kind == KindBool {
		res.Flags[spec.Name] = BoolValue(true)
		return 0, nil
	}
	if pos+1 >= len(remaining) {
		return 0, parseFailure(ErrMatch, newDiagnostic(ErrMatch,
			"Flag --%s expects a %s value but none was provided", spec.Name, spec.Type))
	}
	v, err := coerceFlagValue(remaining[pos+1], spec)
	if err != nil {
		return 0, parseFailure(ErrCoerce, err)
	}
	res.Flags[spec.Name] = v
	return 1, nil
}

// coerceFlagValue coerces one flag value token. A list-typed flag
// takes its elements from a single comma-separated token.
func coerceFlagValue(raw string, spec *FlagSpec) (Value, error) {
	if spec.Type.Kind == KindList {
		return coerceListToken(raw, spec.Type)
	}
	return Coerce(raw, spec.Type)
}

func coerceListToken(raw string, t ValueType) (Value, error) {
	if raw == "" {
		return Value{Type: t}, nil
	}
	parts := strings.Split(raw, ",")
	elems := make([]Value, 0, len(parts))
	for _, p := range parts {
		v, err := Coerce(p, *t.Elem)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Value{Type: t, List: elems}, nil
}

// applyFlagDefaults injects defaults for every declared flag absent
// from the result. Booleans without a declared default resolve to
// false. Root flags participate only on a root-only node, where the
// node's flag set is the root flag set itself.
func applyFlagDefaults(res *MatchResult, node *CommandNode, _ []*FlagSpec) error {
	for _, f := range node.Flags {
		if _, ok := res.Flags[f.Name]; ok {
			continue
		}
		switch {
		case f.Default != nil:
			res.Flags[f.Name] = *f.Default
		case f.Type.Kind == KindBool:
			res.Flags[f.Name] = BoolValue(false)
		}
	}
	return nil
}

// checkRequiredFlags collects every missing required flag before
// failing, producing one aggregated diagnostic.
func checkRequiredFlags(res *MatchResult, node *CommandNode) error {
	var missing []string
	for _, f := range node.Flags {
		if !f.Required {
			continue
		}
		if _, ok := res.Flags[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return parseFailure(ErrMatch, newDiagnostic(ErrMatch,
			"Missing required flags: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// bindPositionals walks the declared args in order against the
// positional candidates. A list arg is final by construction and
// consumes every remaining candidate. Unlike flags, argument errors
// surface as soon as encountered.
func bindPositionals(res *MatchResult, candidates []string, node *CommandNode) error {
	idx := 0
	for _, a := range node.Args {
		if a.Type.Kind == KindList {
			rest := candidates[idx:]
			idx = len(candidates)
			if len(rest) == 0 {
				if a.Required {
					return parseFailure(ErrMatch, newDiagnostic(ErrMatch,
						"Missing required argument '%s'", a.Name))
				}
				if a.Default != nil {
					res.Args[a.Name] = *a.Default
				}
				continue
			}
			elems := make([]Value, 0, len(rest))
			for _, raw := range rest {
				v, err := Coerce(raw, *a.Type.Elem)
				if err != nil {
					return parseFailure(ErrCoerce, err)
				}
				elems = append(elems, v)
			}
			res.Args[a.Name] = Value{Type: a.Type, List: elems}
			continue
		}

		if idx >= len(candidates) {
			if a.Required {
				return parseFailure(ErrMatch, newDiagnostic(ErrMatch,
					"Missing required argument '%s'", a.Name))
			}
			if a.Default != nil {
				res.Args[a.Name] = *a.Default
			}
			// Optional without a default resolves to absence.
			continue
		}

		v, err := Coerce(candidates[idx], a.Type)
		if err != nil {
			return parseFailure(ErrCoerce, err)
		}
		res.Args[a.Name] = v
		idx++
	}

	if idx < len(candidates) {
		return parseFailure(ErrMatch, newDiagnostic(ErrMatch,
			"Unexpected argument '%s' - command does not accept arguments", candidates[idx]))
	}

	if len(node.Args) == 1 {
		if v, ok := res.Args[node.Args[0].Name]; ok {
			res.Single = &v
		}
	}
	return nil
}
