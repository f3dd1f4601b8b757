package rewrite

import (
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

// goldenCase — одна запись манифеста testdata/golden.toml.
type goldenCase struct {
	Name  string `toml:"name"`
	First int    `toml:"first"`
	Last  int    `toml:"last"`
	Input string `toml:"input"`
	Want  string `toml:"want"`
}

func TestGoldenCases(t *testing.T) {
	var manifest struct {
		Cases []goldenCase `toml:"case"`
	}
	if _, err := toml.DecodeFile(filepath.Join("testdata", "golden.toml"), &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(manifest.Cases) == 0 {
		t.Fatal("empty manifest")
	}
	for _, tc := range manifest.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := Rewrite(tc.Input, tc.First, tc.Last)
			if err != nil {
				t.Fatalf("Rewrite: %v", err)
			}
			if got != tc.Want {
				t.Errorf("got %q, want %q", got, tc.Want)
			}
		})
	}
}
