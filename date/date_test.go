package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-02", want: New(2025, time.January, 2)},
		{in: "2025-1-2", want: New(2025, time.January, 2)},
		{in: "2025-12-31", want: New(2025, time.December, 31)},
		{in: "02-01-2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDate_Normalization(t *testing.T) {
	// Day overflow normalizes into the next month.
	got := New(2025, time.January, 32)
	want := New(2025, time.February, 1)
	if got != want {
		t.Errorf("New(2025, January, 32) = %v, want %v", got, want)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := New(2025, time.March, 1)
	b := New(2025, time.March, 2)
	if !a.Before(b) {
		t.Errorf("%v should be before %v", a, b)
	}
	if !b.After(a) {
		t.Errorf("%v should be after %v", b, a)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%v should be neither before nor after itself", a)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2025, time.July, 15)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2025-07-15"` {
		t.Errorf("MarshalJSON() = %s, want %q", data, "2025-07-15")
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
