package dispatch

// ParseLine parses a single pre-joined command line. The line is
// tokenized with full whitespace splitting and quote merging.
func (s *CLISpec) ParseLine(line string) (*ParseResult, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	return s.parseTokens(tokens)
}

// ParseArgs parses an argv-style token sequence. Elements are final
// token boundaries; only outer quotes are stripped. Equivalent content
// produces the same ParseResult as ParseLine.
func (s *CLISpec) ParseArgs(argv []string) (*ParseResult, error) {
	tokens, err := TokenizeArgs(argv)
	if err != nil {
		return nil, err
	}
	return s.parseTokens(tokens)
}

// parseTokens runs the resolve and match stages over finalized spec
// data and assembles the ParseResult.
func (s *CLISpec) parseTokens(tokens []string) (*ParseResult, error) {
	if err := s.Finalize(); err != nil {
		return nil, err
	}

	resolution, err := Resolve(tokens, s)
	if err != nil {
		return nil, err
	}

	matched, err := Match(resolution.Remaining, resolution.Node, s.RootFlags)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		Program: s.Name,
		Command: resolution.Path,
		Flags:   matched.Flags,
		Args:    matched.Args,
		Value:   matched.Single,
	}, nil
}
