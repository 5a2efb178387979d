package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got, err := Generate(12)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(got) != 12 {
			t.Fatalf("Generate() length = %d, want 12", len(got))
		}
		if seen[got] {
			t.Fatalf("Generate() produced duplicate %q", got)
		}
		seen[got] = true
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	got, err := Generate(0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(got) != DefaultLength {
		t.Errorf("Generate(0) length = %d, want %d", len(got), DefaultLength)
	}
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("GenerateCode() length = %d, want %d", len(code), CodeLength)
		}
		for _, r := range code {
			if strings.ContainsRune("0O1IL", r) {
				t.Fatalf("GenerateCode() produced ambiguous character %q in %q", r, code)
			}
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("GenerateCode() produced character outside alphabet: %q", r)
			}
		}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixCampaignMessage, 10)
	if err != nil {
		t.Fatalf("GenerateWithPrefix() error = %v", err)
	}
	if !strings.HasPrefix(got, "cm_") {
		t.Errorf("GenerateWithPrefix() = %q, want cm_ prefix", got)
	}
	if err := ValidatePrefix(got, PrefixCampaignMessage); err != nil {
		t.Errorf("ValidatePrefix() error = %v", err)
	}
}

func TestValidatePrefix(t *testing.T) {
	if err := ValidatePrefix("pay_abc123", PrefixPayment); err != nil {
		t.Errorf("ValidatePrefix() unexpected error = %v", err)
	}
	if err := ValidatePrefix("cm_abc123", PrefixPayment); err == nil {
		t.Error("ValidatePrefix() expected error for wrong prefix")
	}
	if err := ValidatePrefix("pay_", PrefixPayment); err == nil {
		t.Error("ValidatePrefix() expected error for empty body")
	}
}
