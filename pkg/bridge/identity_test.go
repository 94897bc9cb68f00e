package bridge

import "testing"

func TestNormalizeID_StripsSeparators(t *testing.T) {
	got := NormalizeID("00:11:22:FF")
	if got != "001122ff" {
		t.Errorf("expected 001122ff, got %q", got)
	}
}

func TestNormalizeID_EquivalentForms(t *testing.T) {
	forms := []string{"00:11:22:FF", "0011-22FF", "001122ff", "00 11 22 Ff", "00.11.22.ff"}
	want := NormalizeID(forms[0])
	for _, f := range forms[1:] {
		if got := NormalizeID(f); got != want {
			t.Errorf("NormalizeID(%q) = %q, want %q", f, got, want)
		}
	}
}

func TestNormalizeID_UnparseableInput(t *testing.T) {
	if got := NormalizeID("Not-A-Bridge ID"); got != "notabridgeid" {
		t.Errorf("expected notabridgeid, got %q", got)
	}
	if got := NormalizeID(""); got != "" {
		t.Errorf("expected empty result for empty input, got %q", got)
	}
}
