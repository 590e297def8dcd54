package dispatch

import "strings"

// Tokenize splits a raw command line into tokens. Runs of whitespace
// separate tokens; pieces wrapped in double quotes are merged back into
// a single token with the quotes stripped and one space re-inserted
// between the merged pieces. An opened quote that never closes is a
// tokenization failure. Empty or whitespace-only input produces an
// empty token slice, not an error; the resolver decides what an empty
// invocation means.
func Tokenize(input string) ([]string, error) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return nil, nil
	}

	tokens := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		piece := fields[i]
		if !strings.HasPrefix(piece, `"`) {
			tokens = append(tokens, piece)
			continue
		}

		// Closed quoted token standing alone: "abc"
		if len(piece) > 1 && strings.HasSuffix(piece, `"`) {
			tokens = append(tokens, piece[1:len(piece)-1])
			continue
		}

		// Quote opens here; merge following pieces until one closes it.
		parts := []string{piece[1:]}
		closed := false
		for i+1 < len(fields) {
			i++
			next := fields[i]
			if strings.HasSuffix(next, `"`) {
				parts = append(parts, next[:len(next)-1])
				closed = true
				break
			}
			parts = append(parts, next)
		}
		if !closed {
			return nil, parseFailure(ErrTokenize,
				newDiagnostic(ErrTokenize, "Unclosed quoted string"))
		}
		tokens = append(tokens, strings.Join(parts, " "))
	}
	return tokens, nil
}

// TokenizeArgs accepts an already-split argv. Elements are final token
// boundaries: internal whitespace is preserved and no re-splitting or
// merging happens. The only transformation is stripping one pair of
// matching outer double quotes per element, which keeps the joined and
// pre-split entry points equivalent for quoted content.
func TokenizeArgs(argv []string) ([]string, error) {
	if len(argv) == 0 {
		return nil, nil
	}
	tokens := make([]string, 0, len(argv))
	for _, a := range argv {
		tokens = append(tokens, stripOuterQuotes(a))
	}
	return tokens, nil
}
