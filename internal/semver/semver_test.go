package semver

import "testing"

func TestCompareStrings(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.0", "1.10.0", -1},
		{"2.0.0", "1.99.0", 1},
		{"v1.2.3", "1.2.3", 1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0", "1.0.0", -1},
		{"1.0.0", "1.0.0", 0},
		// Not semantic versions: lexicographic.
		{"beta", "alpha", 1},
		{"1.0.0", "latest", -1},
	}

	for _, tt := range tests {
		if got := CompareStrings(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareStrings(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHighest(t *testing.T) {
	best, ok := Highest([]string{"1.2.0", "1.10.0", "1.9.3"})
	if !ok {
		t.Fatalf("expected a version")
	}
	if best != "1.10.0" {
		t.Fatalf("expected best=1.10.0, got %s", best)
	}

	if _, ok := Highest(nil); ok {
		t.Fatalf("expected no version for empty input")
	}
}

func TestParseVersion(t *testing.T) {
	if _, err := ParseVersion("not-a-version"); err == nil {
		t.Fatalf("expected parse error")
	}
	if Compare(MustParseVersion("1.5.0"), MustParseVersion("1.5")) != 0 {
		t.Fatalf("expected 1.5.0 == 1.5")
	}
	if MustParseVersion("v2.1").String() != "v2.1" {
		t.Fatalf("expected original text to be kept")
	}
}
