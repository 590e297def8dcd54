package fuzzy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindBestCommand(t *testing.T) {
	commands := []string{"status", "commit", "checkout", "push"}

	tests := []struct {
		input string
		want  string
	}{
		{"stauts", "status"},
		{"comit", "commit"},
		{"psh", "push"},
		{"STATUS", ""}, // exact match after folding, nothing to suggest
		{"zzzzzz", ""}, // too far from everything
		{"s", ""},      // below the minimum input length
	}
	for _, tt := range tests {
		if got := FindBestCommand(tt.input, commands, 2); got != tt.want {
			t.Errorf("FindBestCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	candidates := []string{"remove", "remote", "rename"}

	// "remot" is distance 1 from remote, 2 from remove; rename is out.
	got := Rank("remot", candidates, 2)
	want := []string{"remote", "remove"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}

func TestRankTieBreaksAreStable(t *testing.T) {
	// Both candidates sit at distance 1 with the same shared prefix
	// length; the lexically smaller one must come first every time.
	got := Rank("hat", []string{"hot", "hit"}, 2)
	want := []string{"hit", "hot"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundedDistance(t *testing.T) {
	tests := []struct {
		a, b  string
		limit int
		want  int
	}{
		{"", "abc", 5, 3},
		{"abc", "", 5, 3},
		{"kitten", "sitting", 5, 3},
		{"same", "same", 2, 0},
		{"short", "muchlongerstring", 2, 3}, // length gap alone exceeds the limit
	}
	for _, tt := range tests {
		if got := boundedDistance(tt.a, tt.b, tt.limit); got != tt.want {
			t.Errorf("boundedDistance(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.limit, got, tt.want)
		}
	}
}
