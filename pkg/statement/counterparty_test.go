package statement

import "testing"

func TestExtractCounterpartyRefAndName(t *testing.T) {
	ref, name := ExtractCounterparty("รับโอนเงินจาก SCB x1234 SOMCHAI J")
	if ref != "x1234" || name != "SOMCHAI J" {
		t.Fatalf("got (%q, %q)", ref, name)
	}
}

func TestExtractCounterpartyMaskedShapes(t *testing.T) {
	ref, _ := ExtractCounterparty("โอนเงินไป KBANK xxx-x-12345-x")
	if ref != "xxx-x-12345-x" {
		t.Fatalf("ref = %q", ref)
	}
}

func TestExtractCounterpartyNameOnly(t *testing.T) {
	ref, name := ExtractCounterparty("โอนไป กรุงเทพ SOMSRI SHOP")
	if ref != "" || name != "SOMSRI SHOP" {
		t.Fatalf("got (%q, %q)", ref, name)
	}
}

func TestExtractCounterpartyNoBankToken(t *testing.T) {
	ref, name := ExtractCounterparty("STARBUCKS COFFEE 150.00")
	if ref != "" || name != "" {
		t.Fatalf("got (%q, %q), want empty", ref, name)
	}
}

func TestExtractCounterpartyBareToken(t *testing.T) {
	ref, name := ExtractCounterparty("โอนเงินไป SCB")
	if ref != "" || name != "" {
		t.Fatalf("got (%q, %q), want empty", ref, name)
	}
}
