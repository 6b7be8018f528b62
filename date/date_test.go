package date

import (
	"encoding/json"
	"testing"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseCompact(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "20250930", want: New(2025, 9, 30)},
		{in: " 20240229 ", want: New(2024, 2, 29)},
		{in: "99999999", wantErr: true},
		{in: "20230229", wantErr: true},
		{in: "2025093", wantErr: true},
		{in: "20250930.0", wantErr: true},
		{in: "2025-09-30", wantErr: true},
		{in: "", wantErr: true},
		{in: "nan", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompact(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompact(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCompact(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if want := New(2025, 7, 1); got != want {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
	if _, err := Parse("not a date"); err == nil {
		t.Error("Parse() expected an error for garbage input")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, 9, 31), New(2025, 10, 1); got != want {
		t.Errorf("New(2025, 9, 31) = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, 9, 30)
	data, err := json.Marshal(map[string]any{"fm_fecha": d})
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	if got, want := string(data), `{"fm_fecha":"2025-09-30"}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2025-09-30"`), &back); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("json.Unmarshal() = %v, want %v", back, d)
	}
}

func TestZeroAndOrder(t *testing.T) {
	var z Date
	if !z.IsZero() {
		t.Error("zero Date.IsZero() = false, want true")
	}
	a, b := New(2025, 1, 1), New(2025, 1, 2)
	if !a.Before(b) || !b.After(a) || a.After(b) {
		t.Errorf("ordering between %v and %v is inconsistent", a, b)
	}
}
