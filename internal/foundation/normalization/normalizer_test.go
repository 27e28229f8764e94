package normalization

import (
	"strings"
	"testing"
)

type style string

const (
	styleExpanded   style = "expanded"
	styleCompressed style = "compressed"
)

func newStyleNormalizer() *Normalizer[style] {
	return NewNormalizer("output style", map[string]style{
		"expanded":   styleExpanded,
		"compressed": styleCompressed,
	}, styleExpanded)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newStyleNormalizer()

	tests := []struct {
		name     string
		input    string
		expected style
	}{
		{"exact match", "compressed", styleCompressed},
		{"case insensitive", "COMPRESSED", styleCompressed},
		{"with spaces", "  expanded  ", styleExpanded},
		{"invalid input", "nested", styleExpanded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := newStyleNormalizer()

	if v, err := n.Parse(""); err != nil || v != styleExpanded {
		t.Errorf("Parse(\"\") = %v, %v; want default", v, err)
	}
	if v, err := n.Parse("Compressed"); err != nil || v != styleCompressed {
		t.Errorf("Parse(Compressed) = %v, %v", v, err)
	}

	_, err := n.Parse("nested")
	if err == nil {
		t.Fatal("expected error for unknown value")
	}
	if !strings.Contains(err.Error(), "output style") || !strings.Contains(err.Error(), "compressed, expanded") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newStyleNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"

	if n.ValidKeys()[0] == "mutated" {
		t.Error("ValidKeys must return a copy")
	}
}
