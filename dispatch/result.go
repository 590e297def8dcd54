package dispatch

// ParseResult is the transient product of one parsing pass, consumed
// by the dispatcher and discarded. Flags always contains the help
// slot. Value is the single-argument shortcut, set only when the
// resolved node declares exactly one argument and it bound a value.
type ParseResult struct {
	Program string
	Command []string
	Flags   map[string]Value
	Args    map[string]Value
	Value   *Value
}

// Help reports whether the help flag fired for this invocation.
func (r *ParseResult) Help() bool {
	v, ok := r.Flags["help"]
	return ok && v.Bool
}

// Flag accessors follow the safe/fallback pair convention: GetX
// returns the value and whether it was present, MustGetX substitutes a
// caller default.

func (r *ParseResult) GetString(name string) (string, bool) {
	v, ok := r.Flags[name]
	if !ok || (v.Type.Kind != KindString && v.Type.Kind != KindEnum) {
		return "", false
	}
	return v.Str, true
}

func (r *ParseResult) MustGetString(name, fallback string) string {
	if s, ok := r.GetString(name); ok {
		return s
	}
	return fallback
}

func (r *ParseResult) GetBool(name string) (bool, bool) {
	v, ok := r.Flags[name]
	if !ok || v.Type.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

func (r *ParseResult) MustGetBool(name string, fallback bool) bool {
	if b, ok := r.GetBool(name); ok {
		return b
	}
	return fallback
}

func (r *ParseResult) GetInt(name string) (int, bool) {
	v, ok := r.Flags[name]
	if !ok || v.Type.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

func (r *ParseResult) MustGetInt(name string, fallback int) int {
	if n, ok := r.GetInt(name); ok {
		return n
	}
	return fallback
}

func (r *ParseResult) GetFloat(name string) (float64, bool) {
	v, ok := r.Flags[name]
	if !ok || v.Type.Kind != KindFloat {
		return 0, false
	}
	return v.Float, true
}

func (r *ParseResult) MustGetFloat(name string, fallback float64) float64 {
	if f, ok := r.GetFloat(name); ok {
		return f
	}
	return fallback
}

func (r *ParseResult) GetStringList(name string) ([]string, bool) {
	v, ok := r.Flags[name]
	if !ok || v.Type.Kind != KindList {
		return nil, false
	}
	return v.Strings(), true
}

// Argument accessors mirror the flag accessors over the Args map.

func (r *ParseResult) GetArg(name string) (Value, bool) {
	v, ok := r.Args[name]
	return v, ok
}

func (r *ParseResult) GetArgString(name string) (string, bool) {
	v, ok := r.Args[name]
	if !ok || (v.Type.Kind != KindString && v.Type.Kind != KindEnum) {
		return "", false
	}
	return v.Str, true
}

func (r *ParseResult) GetArgInt(name string) (int, bool) {
	v, ok := r.Args[name]
	if !ok || v.Type.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

func (r *ParseResult) GetArgStringList(name string) ([]string, bool) {
	v, ok := r.Args[name]
	if !ok || v.Type.Kind != KindList {
		return nil, false
	}
	return v.Strings(), true
}

// activeRootFlag returns the name of the first declared root flag
// whose boolean value is true, for root-flag-only invocations.
func (r *ParseResult) activeRootFlag(spec *CLISpec) string {
	for _, f := range spec.RootFlags {
		if f.Name == "help" || f.Type.Kind != KindBool {
			continue
		}
		if v, ok := r.Flags[f.Name]; ok && v.Bool {
			return f.Name
		}
	}
	return ""
}
