package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRules_Valid(t *testing.T) {
	rules := DefaultRules()
	if err := ValidateRules(rules); err != nil {
		t.Fatalf("default rules should validate: %v", err)
	}

	// The cascade order is part of the contract.
	order := []Tier{TierExact, TierSystemActor, TierNamedActor, TierPassive, TierPhoneChange, TierNotice}
	pos := 0
	for _, r := range rules {
		for pos < len(order) && r.Tier != order[pos] {
			pos++
		}
		if pos == len(order) {
			t.Fatalf("rule %s is out of tier order", r.Name)
		}
	}
}

func TestDecodeRules(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRules int
		wantErr   string
	}{
		{
			name: "valid table",
			input: `version: "2025-04"
rules:
  - tier: exact
    scope: any
    kind: exact
    phrase: "this message was deleted"
  - name: custom-left
    tier: named-actor
    scope: named
    kind: actor-prefix
    phrase: left
`,
			wantRules: 2,
		},
		{
			name: "unknown field",
			input: `rules:
  - tier: exact
    scope: any
    kind: exact
    phrase: x
    colour: red
`,
			wantErr: "colour",
		},
		{
			name: "bad pattern",
			input: `rules:
  - tier: exact
    scope: any
    kind: pattern
    phrase: "([unclosed"
`,
			wantErr: "rules[0].phrase",
		},
		{
			name: "actor prefix needs named scope",
			input: `rules:
  - tier: named-actor
    scope: any
    kind: actor-prefix
    phrase: left
`,
			wantErr: "rules[0].scope",
		},
		{
			name:    "empty table",
			input:   "rules: []\n",
			wantErr: "no rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := DecodeRules(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("DecodeRules() expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("DecodeRules() error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeRules() error = %v", err)
			}
			if len(rules) != tt.wantRules {
				t.Errorf("DecodeRules() returned %d rules, want %d", len(rules), tt.wantRules)
			}
			for _, r := range rules {
				if r.Name == "" {
					t.Errorf("rule without name should get a generated one: %+v", r)
				}
			}
		})
	}
}

func TestEncodeRules_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeRules(&buf, "builtin", DefaultRules()); err != nil {
		t.Fatalf("EncodeRules() error = %v", err)
	}
	if !strings.Contains(buf.String(), "version: builtin") {
		t.Errorf("encoded rules should carry the version, got:\n%s", buf.String())
	}

	rules, err := DecodeRules(&buf)
	if err != nil {
		t.Fatalf("DecodeRules() error = %v", err)
	}
	if len(rules) != len(DefaultRules()) {
		t.Errorf("round trip lost rules: got %d, want %d", len(rules), len(DefaultRules()))
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRules() should fail for a missing file")
	} else {
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected *ConfigError, got %T", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error should wrap os.ErrNotExist, got %v", err)
		}
	}

	path := filepath.Join(dir, "rules.yaml")
	content := "rules:\n  - tier: notice\n    scope: any\n    kind: contains\n    phrase: pinned a message\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rules) != 1 || rules[0].Phrase != "pinned a message" {
		t.Errorf("LoadRules() = %+v", rules)
	}
}
