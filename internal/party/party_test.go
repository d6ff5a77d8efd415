package party

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Hadash-Ta'al", HadashTaal},
		{"Ra'am", Raam},
		{"Islamic/Independent", "Islamic / Independent"},
		{"Activist", Activists},
		{"Unknown", "Unknown"},
		{"", ""},
		{"Islamic / Independent", "Islamic / Independent"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeIsStable(t *testing.T) {
	for _, raw := range []string{"Activist", "Islamic/Independent", "Likud"} {
		first := Normalize(raw)
		for i := 0; i < 5; i++ {
			if got := Normalize(raw); got != first {
				t.Fatalf("Normalize(%q) changed from %q to %q", raw, first, got)
			}
		}
	}
}

func TestAllAreCanonical(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 canonical parties, got %d", len(all))
	}
	for _, p := range all {
		if !IsCanonical(p) {
			t.Errorf("expected %q to be canonical", p)
		}
		if Normalize(p) != p {
			t.Errorf("canonical party %q should normalize to itself", p)
		}
	}
	if IsCanonical("Activist") {
		t.Error("raw label 'Activist' should not be canonical")
	}
}
