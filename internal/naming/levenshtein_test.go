package naming

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"hello", "hello", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},    // substitution
		{"a", "ab", 1},   // insertion
		{"ab", "a", 1},   // deletion
		{"abc", "ab", 1}, // deletion
		{"ab", "abc", 1}, // insertion

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"algorithm", "altruistic", 6},

		// Case-sensitive
		{"ABC", "abc", 3},
		{"Hello", "hello", 1},

		// Real-world field name examples
		{"orderid", "orderid", 0},
		{"customerid", "customerID", 2}, // case difference
		{"pricecents", "totalcents", 5},
		{"createdat", "updatedat", 3}, // c->u, r->p, e->d
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := Levenshtein(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	keywords := []string{"int", "string", "double", "bool", "float", "struct", "vector"}

	tests := []struct {
		word     string
		expected []string
	}{
		{"strng", []string{"string"}},
		{"flot", []string{"float"}},
		{"vectr", []string{"vector"}},
		{"in", []string{"int"}},
		{"map", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := Closest(tt.word, keywords)
			if len(got) != len(tt.expected) {
				t.Fatalf("Closest(%q) = %v, want %v", tt.word, got, tt.expected)
			}

			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("Closest(%q) = %v, want %v", tt.word, got, tt.expected)
				}
			}
		})
	}
}

// Benchmark tests
func BenchmarkLevenshtein(b *testing.B) {
	a := "algorithm"
	bStr := "altruistic"
	for i := 0; i < b.N; i++ {
		Levenshtein(a, bStr)
	}
}
