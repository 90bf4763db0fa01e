package assumption

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestDefaultForm_ToAssumptions(t *testing.T) {
	a := DefaultForm().ToAssumptions()

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"base_rent", a.BaseRent, 60.73},
		{"rent_growth_rate", a.RentGrowthRate, 0.0067},
		{"occupancy_rate", a.OccupancyRate, 0.98},
		{"operating_cost_ratio", a.OperatingCostRatio, 0.155},
		{"discount_rate", a.DiscountRate, 0.06},
		{"terminal_growth_rate", a.TerminalGrowthRate, 0.025},
		{"gross_floor_area", a.GrossFloorArea, 53606.58},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
	if a.TermYears != 64 {
		t.Errorf("expected 64 years, got %d", a.TermYears)
	}
}

func TestFromAssumptions_RoundTrip(t *testing.T) {
	f := DefaultForm()
	back := FromAssumptions(f.ToAssumptions())

	if math.Abs(back.DiscountPct-f.DiscountPct) > 1e-9 || math.Abs(back.OccupancyPct-f.OccupancyPct) > 1e-9 {
		t.Errorf("expected %+v, got %+v", f, back)
	}
	if back.TermYears != f.TermYears {
		t.Errorf("expected term %d, got %d", f.TermYears, back.TermYears)
	}
}

func TestNewSet(t *testing.T) {
	s := NewSet("Tower A", DefaultForm())

	if _, err := uuid.Parse(s.CaseID); err != nil {
		t.Errorf("expected a UUID case ID, got '%s'", s.CaseID)
	}
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	other := NewSet("Tower A", DefaultForm())
	if other.CaseID == s.CaseID {
		t.Error("case IDs should be unique")
	}
}

func TestSet_Update(t *testing.T) {
	s := NewSet("Tower A", DefaultForm())
	created := s.UpdatedAt

	f := DefaultForm()
	f.DiscountPct = 7
	s.Update(f)

	if s.Assumptions().DiscountRate != 0.07 {
		t.Errorf("expected discount 0.07, got %v", s.Assumptions().DiscountRate)
	}
	if s.UpdatedAt.Before(created) {
		t.Error("UpdatedAt should not move backwards")
	}
}

func TestDecodeForm_PartialKeepsDefaults(t *testing.T) {
	f, err := DecodeForm([]byte(`{"discount_pct": 7.5}`), DefaultForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DiscountPct != 7.5 {
		t.Errorf("expected discount 7.5, got %v", f.DiscountPct)
	}
	if f.BaseRent != 60.73 || f.TermYears != 64 {
		t.Errorf("expected defaults for missing fields, got %+v", f)
	}
}

func TestDecodeForm_Invalid(t *testing.T) {
	if _, err := DecodeForm([]byte(`[1, 2, 3]`), DefaultForm()); err == nil {
		t.Fatal("expected error for array payload, got nil")
	}
}

func TestDecodeSet_BareForm(t *testing.T) {
	s, err := DecodeSet([]byte("{\n  // office tower\n  base_rent: 80\n  term_years: 20\n}"), DefaultForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Form.BaseRent != 80 || s.Form.TermYears != 20 {
		t.Errorf("expected base rent 80 / term 20, got %+v", s.Form)
	}
	if s.Form.DiscountPct != 6.0 {
		t.Errorf("expected default discount, got %v", s.Form.DiscountPct)
	}
	if s.CaseID == "" {
		t.Error("case ID should be generated")
	}
}

func TestDecodeSet_Full(t *testing.T) {
	s, err := DecodeSet([]byte(`{"case_id": "not-a-uuid", "label": "Mall", "form": {"base_rent": 45, "term_years": 30}}`), DefaultForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Label != "Mall" || s.Form.BaseRent != 45 || s.Form.TermYears != 30 {
		t.Errorf("unexpected set: %+v", s)
	}
	if _, err := uuid.Parse(s.CaseID); err != nil {
		t.Errorf("invalid case ID should be replaced, got '%s'", s.CaseID)
	}
}

func TestDecodeSet_CustomDefaults(t *testing.T) {
	defaults := DefaultForm()
	defaults.TermYears = 10
	defaults.DiscountPct = 7

	tests := []struct {
		name string
		body string
	}{
		{"Bare form", `{"base_rent": 60.73}`},
		{"Full set", `{"label": "Tower", "form": {"base_rent": 60.73}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeSet([]byte(tt.body), defaults)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Form.TermYears != 10 || s.Form.DiscountPct != 7 {
				t.Errorf("expected term 10 / discount 7 from defaults, got %+v", s.Form)
			}
		})
	}

	if DefaultForm().TermYears != 64 {
		t.Error("custom defaults should not leak into DefaultForm")
	}
}

func TestHasFormKey(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"form": {"base_rent": 1}}`, true},
		{`{"base_rent": 1}`, false},
		{`{"label": "form"}`, false},
		{`{"note": {"form": 1}}`, false},
		{`[1, 2]`, false},
	}
	for _, tt := range tests {
		if got := HasFormKey([]byte(tt.body)); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.body, tt.want, got)
		}
	}
}

func TestLoadFile_CustomDefaults(t *testing.T) {
	dir := t.TempDir()
	defaults := DefaultForm()
	defaults.TermYears = 10

	for name, body := range map[string]string{
		"bare.yaml": "base_rent: 55\n",
		"set.json":  `{"form": {"base_rent": 55}}`,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		s, err := LoadFile(path, defaults)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if s.Form.TermYears != 10 || s.Form.BaseRent != 55 {
			t.Errorf("%s: expected base rent 55 / term 10, got %+v", name, s.Form)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"tower.yaml": "label: Tower\nform:\n  base_rent: 70\n  term_years: 40\n",
		"bare.yml":   "base_rent: 55\ndiscount_pct: 6.5\n",
		"mall.hjson": "{\n  label: Mall\n  form: {\n    base_rent: 45\n  }\n}",
		"plain.json": `{"base_rent": 50, "term_years": 10}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	tests := []struct {
		file     string
		label    string
		baseRent float64
		term     int
	}{
		{"tower.yaml", "Tower", 70, 40},
		{"bare.yml", "", 55, 64},
		{"mall.hjson", "Mall", 45, 64},
		{"plain.json", "", 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := LoadFile(filepath.Join(dir, tt.file), DefaultForm())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Label != tt.label {
				t.Errorf("expected label '%s', got '%s'", tt.label, s.Label)
			}
			if s.Form.BaseRent != tt.baseRent {
				t.Errorf("expected base rent %v, got %v", tt.baseRent, s.Form.BaseRent)
			}
			if s.Form.TermYears != tt.term {
				t.Errorf("expected term %d, got %d", tt.term, s.Form.TermYears)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json"), DefaultForm()); err == nil {
		t.Error("expected error for missing file")
	}
}
