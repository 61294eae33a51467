package uuid

import "testing"

func TestNew(t *testing.T) {
	a := New()
	b := New()
	if !IsValid(a) || !IsValid(b) {
		t.Fatalf("expected valid UUIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Fatal("expected distinct UUIDs")
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190F2A4-1B2C-7D3E-8F40-123456789ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190f2a4-1b2c-7d3e-8f40-123456789abc" {
		t.Errorf("expected lower-cased UUID, got %q", got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid UUID")
	}
}
