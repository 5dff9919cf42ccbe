package statement

import "testing"

func TestParseDateTwoDigitYearPivot(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"03/01/26", "2026-01-03"},  // <=30 reads as 20xx
		{"15/06/30", "2030-06-15"},  // pivot boundary
		{"03/01/68", "2025-01-03"},  // >30 reads as BE 2568
		{"31/12/99", "2056-12-31"},  // BE 2599
		{"05/01/2568", "2025-01-05"}, // explicit BE year
		{"05/01/2026", "2026-01-05"}, // explicit CE year
		{"2026-02-07", "2026-02-07"}, // already ISO
		{"03-01-26", "2026-01-03"},   // dash separated
	}
	for _, c := range cases {
		got, conf := ParseDate(c.in)
		if got != c.want {
			t.Fatalf("ParseDate(%q) = %q, want %q", c.in, got, c.want)
		}
		if conf != 0.85 {
			t.Fatalf("ParseDate(%q) conf = %v, want 0.85", c.in, conf)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "no date here", "31/02/26", "00/01/26", "15/13/26"} {
		got, conf := ParseDate(in)
		if got != "" || conf != 0 {
			t.Fatalf("ParseDate(%q) = (%q, %v), want empty", in, got, conf)
		}
	}
}

func TestParseDateFirstMatchWins(t *testing.T) {
	got, _ := ParseDate("time 16:25 on 03/01/26 ref 99/99")
	if got != "2026-01-03" {
		t.Fatalf("got %q, want 2026-01-03", got)
	}
}
