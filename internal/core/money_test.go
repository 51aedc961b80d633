package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12", 1200, false},
		{"0.5", 50, false},
		{".5", 50, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"+3", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := ParseDecimalToCents(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecimalToCents(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDecimalToCents(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Cents: 1000}).String(); s != "10.00" {
		t.Errorf("String() = %q, want 10.00", s)
	}
	if s := (Money{Cents: 5}).String(); s != "0.05" {
		t.Errorf("String() = %q, want 0.05", s)
	}
	if s := (Money{Cents: -1250}).String(); s != "-12.50" {
		t.Errorf("String() = %q, want -12.50", s)
	}
}

func TestRound2(t *testing.T) {
	if v := Round2(14.999999999); v != 15.0 {
		t.Errorf("Round2 = %v, want 15.0", v)
	}
	if v := Round2(3.336); v != 3.34 {
		t.Errorf("Round2 = %v, want 3.34", v)
	}
	if v := Round2(-3.336); v != -3.34 {
		t.Errorf("Round2 = %v, want -3.34", v)
	}
}
