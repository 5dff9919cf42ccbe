package statement

import "testing"

func TestDispatchPicksKBank(t *testing.T) {
	rows, format := Dispatch([]string{
		"03-01-26 16:25 รับโอนเงิน  5,000.00  5,000.00  K PLUS",
	})
	if format != "kbank" {
		t.Fatalf("format = %q", format)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
}

func TestDispatchNarrowBeforePermissive(t *testing.T) {
	// A header-gated Krungsri statement must not fall through to the generic
	// card parser even though its lines carry amounts.
	rows, format := Dispatch(krungsriFixture)
	if format != "krungsri" {
		t.Fatalf("format = %q", format)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
}

func TestDispatchNoFormat(t *testing.T) {
	rows, format := Dispatch([]string{"ใบแจ้งยอด", "ไม่มีรายการ"})
	if rows != nil || format != "" {
		t.Fatalf("got (%d rows, %q)", len(rows), format)
	}
}

func TestDispatchDeterministic(t *testing.T) {
	lines := []string{"01/02/26 11:15 X2 ENET  65.00  496.55  DESC: จ่ายบิล QR"}
	r1, f1 := Dispatch(lines)
	r2, f2 := Dispatch(lines)
	if f1 != f2 || f1 != "scb_tran" {
		t.Fatalf("formats = %q, %q", f1, f2)
	}
	if len(r1) != len(r2) || !r1[0].Amount.Equal(r2[0].Amount) {
		t.Fatal("repeated dispatch diverged")
	}
}
