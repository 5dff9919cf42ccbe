package statement

import "testing"

func TestParseAmountGrouping(t *testing.T) {
	amt, neg, ok := ParseAmount("5,000.00")
	if !ok || neg || !amt.Equal(mustDecimal(t, "5000.00")) {
		t.Fatalf("got (%v, %v, %v)", amt, neg, ok)
	}
}

func TestParseAmountSoftHyphenCredit(t *testing.T) {
	amt, neg, ok := ParseAmount("­7,152.95")
	if !ok || !neg {
		t.Fatalf("soft hyphen not detected as credit: (%v, %v, %v)", amt, neg, ok)
	}
	if !amt.Equal(mustDecimal(t, "7152.95")) {
		t.Fatalf("amount = %v, want 7152.95", amt)
	}
}

func TestParseAmountLeadingMinus(t *testing.T) {
	amt, neg, ok := ParseAmount("-1,250.00")
	if !ok || !neg || !amt.Equal(mustDecimal(t, "1250.00")) {
		t.Fatalf("got (%v, %v, %v)", amt, neg, ok)
	}
}

func TestParseAmountGarbage(t *testing.T) {
	if _, _, ok := ParseAmount("abc"); ok {
		t.Fatal("expected parse failure")
	}
}

func TestLargestAmount(t *testing.T) {
	amt, conf := LargestAmount("withdraw 500.00 balance 10,250.00 ref 42")
	if conf != 0.80 {
		t.Fatalf("conf = %v, want 0.80", conf)
	}
	if !amt.Equal(mustDecimal(t, "10250.00")) {
		t.Fatalf("amount = %v, want 10250.00", amt)
	}
}

func TestLargestAmountNone(t *testing.T) {
	amt, conf := LargestAmount("no amounts at all")
	if conf != 0 || !amt.IsZero() {
		t.Fatalf("got (%v, %v), want zero", amt, conf)
	}
}
