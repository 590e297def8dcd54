package dispatch

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// The YAML spec file mirrors the builder API one to one: a document
// declares the program, its root flags, and a nested command tree.
// Types are spelled as the same strings ValueType.String produces, so
// a rendered spec round-trips.

type specFile struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version"`
	Description string        `yaml:"description"`
	RootFlags   []flagFile    `yaml:"rootFlags"`
	Commands    []commandFile `yaml:"commands"`
}

type commandFile struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Flags       []flagFile    `yaml:"flags"`
	Args        []argFile     `yaml:"args"`
	Commands    []commandFile `yaml:"commands"`
}

type flagFile struct {
	Name        string `yaml:"name"`
	Short       string `yaml:"short"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default"`
	HasDefault  bool   `yaml:"-"`
	Description string `yaml:"description"`
}

type argFile struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default"`
	Description string `yaml:"description"`
}

// UnmarshalYAML tracks whether a default key was present at all, since
// an empty string is a legal default for string flags.
func (f *flagFile) UnmarshalYAML(node *yaml.Node) error {
	type plain flagFile
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*f = flagFile(p)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "default" {
			f.HasDefault = true
		}
	}
	return nil
}

// LoadSpecFile reads a YAML spec document from a file and finalizes it.
func LoadSpecFile(path string) (*CLISpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSpec(f)
}

// LoadSpec decodes a YAML spec document and finalizes the resulting
// tree, so loader output is always validation-clean or an error.
func LoadSpec(r io.Reader) (*CLISpec, error) {
	var doc specFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if doc.Name == "" {
		return nil, newSpecError("spec file must declare a program name")
	}

	spec := &CLISpec{
		Name:        doc.Name,
		Version:     doc.Version,
		Description: doc.Description,
	}
	for i := range doc.RootFlags {
		fs, err := doc.RootFlags[i].toSpec()
		if err != nil {
			return nil, err
		}
		spec.RootFlags = append(spec.RootFlags, fs)
	}
	for i := range doc.Commands {
		node, err := doc.Commands[i].toSpec()
		if err != nil {
			return nil, err
		}
		spec.Commands = append(spec.Commands, node)
	}

	if err := spec.Finalize(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (c *commandFile) toSpec() (*CommandNode, error) {
	node := &CommandNode{Name: c.Name, Description: c.Description}
	for i := range c.Flags {
		fs, err := c.Flags[i].toSpec()
		if err != nil {
			return nil, err
		}
		node.Flags = append(node.Flags, fs)
	}
	for i := range c.Args {
		as, err := c.Args[i].toSpec()
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, as)
	}
	for i := range c.Commands {
		sub, err := c.Commands[i].toSpec()
		if err != nil {
			return nil, err
		}
		node.Subcommands = append(node.Subcommands, sub)
	}
	return node, nil
}

func (f *flagFile) toSpec() (*FlagSpec, error) {
	t, err := ParseTypeString(f.Type)
	if err != nil {
		return nil, newSpecError("flag '%s': %v", f.Name, err)
	}
	spec := &FlagSpec{
		Name:        f.Name,
		Short:       f.Short,
		Type:        t,
		Required:    f.Required,
		Description: f.Description,
	}
	if f.HasDefault {
		v, err := coerceDefault(f.Default, t)
		if err != nil {
			return nil, newSpecError("flag '%s' default: %v", f.Name, err)
		}
		spec.Default = &v
	}
	return spec, nil
}

func (a *argFile) toSpec() (*ArgSpec, error) {
	t, err := ParseTypeString(a.Type)
	if err != nil {
		return nil, newSpecError("argument '%s': %v", a.Name, err)
	}
	spec := &ArgSpec{
		Name:        a.Name,
		Type:        t,
		Required:    a.Required,
		Description: a.Description,
	}
	if a.Default != "" {
		v, err := coerceDefault(a.Default, t)
		if err != nil {
			return nil, newSpecError("argument '%s' default: %v", a.Name, err)
		}
		spec.Default = &v
	}
	return spec, nil
}

// coerceDefault admits list literals as comma-separated element runs,
// matching the single-token form flags accept on the command line.
func coerceDefault(raw string, t ValueType) (Value, error) {
	if t.Kind == KindList {
		return coerceListToken(raw, t)
	}
	return Coerce(raw, t)
}

// ParseTypeString parses the textual type names the spec file uses:
// string, bool, int, float, enum(a|b|c) and list(<elem>).
func ParseTypeString(s string) (ValueType, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "string":
		return TypeString, nil
	case "bool":
		return TypeBool, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	}
	if inner, ok := insideParens(s, "enum"); ok {
		values := strings.Split(inner, "|")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		if len(values) == 0 || (len(values) == 1 && values[0] == "") {
			return ValueType{}, fmt.Errorf("enum type needs at least one value")
		}
		return TypeEnum(values...), nil
	}
	if inner, ok := insideParens(s, "list"); ok {
		if strings.TrimSpace(inner) == "" {
			return ValueType{}, fmt.Errorf("list type needs an element type")
		}
		elem, err := ParseTypeString(inner)
		if err != nil {
			return ValueType{}, err
		}
		if elem.Kind == KindList {
			return ValueType{}, fmt.Errorf("nested list types are not supported")
		}
		return TypeList(elem), nil
	}
	return ValueType{}, fmt.Errorf("unknown type '%s'", s)
}

func insideParens(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix+"(") && strings.HasSuffix(s, ")") {
		return s[len(prefix)+1 : len(s)-1], true
	}
	return "", false
}
