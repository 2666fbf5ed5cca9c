package model

import (
	"testing"
)

// TestNormalizeName verifies the shared caseless identity rule.
func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{name: "trim and case differences compare equal", a: " johns hopkins ", b: "Johns Hopkins", same: true},
		{name: "internal whitespace is significant", a: "Johns  Hopkins", b: "Johns Hopkins", same: false},
		{name: "different names differ", a: "Temple", b: "Drexel", same: false},
		{name: "empty equals whitespace", a: "", b: "   ", same: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeName(tt.a) == NormalizeName(tt.b)
			if got != tt.same {
				t.Errorf("NormalizeName(%q) == NormalizeName(%q): got %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

// TestLocationKey verifies the 6-tuple deduplication identity.
func TestLocationKey(t *testing.T) {
	t.Parallel()

	base := Location{
		Name:  "Cedar Crest Clinic",
		Phone: "610-555-0100",
		Address: &Address{
			Line1: "1200 Cedar Crest Blvd",
			Line2: "Suite 300",
			City:  "Allentown",
			State: "PA",
			Zip:   "18103",
		},
	}

	t.Run("case and whitespace variants share a key", func(t *testing.T) {
		t.Parallel()

		variant := Location{
			Name:  "  CEDAR CREST CLINIC ",
			Phone: "different phone does not matter",
			Address: &Address{
				Line1: "1200 cedar crest blvd",
				Line2: "SUITE 300",
				City:  " allentown",
				State: "pa ",
				Zip:   "18103",
			},
		}
		if base.Key() != variant.Key() {
			t.Errorf("keys differ: %v vs %v", base.Key(), variant.Key())
		}
	})

	t.Run("different street produces a different key", func(t *testing.T) {
		t.Parallel()

		other := base
		addr := *base.Address
		addr.Line1 = "17th & Chew"
		other.Address = &addr
		if base.Key() == other.Key() {
			t.Error("expected distinct keys for distinct streets")
		}
	})

	t.Run("nil address folds to empty components", func(t *testing.T) {
		t.Parallel()

		a := Location{Name: "X"}
		b := Location{Name: "x ", Address: &Address{}}
		if a.Key() != b.Key() {
			t.Errorf("nil and empty address should share a key: %v vs %v", a.Key(), b.Key())
		}
	})
}

// TestExperienceKey verifies duplicate-entry collapse identity.
func TestExperienceKey(t *testing.T) {
	t.Parallel()

	year := 2015
	a := Experience{Type: "Fellowship", Institution: "Johns Hopkins", Details: "Cardiology", Year: &year}
	b := Experience{Type: " FELLOWSHIP ", Institution: "johns hopkins", Details: "CARDIOLOGY"}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}

	c := Experience{Type: "Fellowship", Institution: "Johns Hopkins", Details: "Oncology"}
	if a.Key() == c.Key() {
		t.Error("details must participate in the key")
	}
}

// TestExperienceString verifies the spreadsheet formatting.
func TestExperienceString(t *testing.T) {
	t.Parallel()

	year := 2015
	tests := []struct {
		name string
		exp  Experience
		want string
	}{
		{name: "full entry", exp: Experience{Type: "MD", Institution: "Temple University", Year: &year}, want: "MD: Temple University (2015)"},
		{name: "no year", exp: Experience{Type: "MD", Institution: "Temple University"}, want: "MD: Temple University"},
		{name: "type only", exp: Experience{Type: "Board Certified"}, want: "Board Certified"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.exp.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExperienceLevelString verifies level names, which double as schema seeds.
func TestExperienceLevelString(t *testing.T) {
	t.Parallel()

	want := []string{"Unknown", "Education", "Training", "Certification", "Internship", "Residency", "Fellowship"}
	levels := ExperienceLevels()
	if len(levels) != len(want) {
		t.Fatalf("ExperienceLevels() returned %d levels, want %d", len(levels), len(want))
	}
	for i, l := range levels {
		if l.String() != want[i] {
			t.Errorf("level %d = %q, want %q", i, l.String(), want[i])
		}
	}
	if ExperienceLevel(99).String() != "Unknown" {
		t.Error("out-of-range level should stringify as Unknown")
	}
}

// TestAddressString verifies partially-populated addresses stay readable.
func TestAddressString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		addr Address
		want string
	}{
		{
			name: "full address",
			addr: Address{Line1: "1200 Cedar Crest Blvd", Line2: "Suite 300", City: "Allentown", State: "PA", Zip: "18103", County: "Lehigh", Country: "USA"},
			want: "1200 Cedar Crest Blvd\nSuite 300\nAllentown, PA 18103\nLehigh County\nUSA",
		},
		{
			name: "street only",
			addr: Address{Line1: "17th & Chew"},
			want: "17th & Chew",
		},
		{
			name: "city and state only",
			addr: Address{City: "Allentown", State: "PA"},
			want: "Allentown, PA",
		},
		{
			name: "empty",
			addr: Address{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.addr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestLocationString verifies the one-line location rendering.
func TestLocationString(t *testing.T) {
	t.Parallel()

	loc := Location{
		Name:    "Cedar Crest Clinic",
		Phone:   "610-555-0100",
		Address: &Address{Line1: "1200 Cedar Crest Blvd", City: "Allentown", State: "PA", Zip: "18103"},
	}
	want := "Cedar Crest Clinic (1200 Cedar Crest Blvd, Allentown, PA 18103) (610-555-0100)"
	if got := loc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got := (Location{Name: "Bare"}).String(); got != "Bare" {
		t.Errorf("String() = %q, want %q", got, "Bare")
	}
}
