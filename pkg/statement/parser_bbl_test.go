package statement

import "testing"

var bblFixture = []string{
	"ธนาคารกรุงเทพ จำกัด (มหาชน)",
	"วันที่ เวลา",
	"03/01/68 10:23 โอนเงิน พร้อมเพย์  500.00  1,734.56",
	"ไปยัง SCB x1234 SOMCHAI J",
	"หน้า 1",
	"05/01/68 09:00 ฝากเงินสด  1,000.00  2,734.56",
	"06/01/68 12:00 โอนระหว่างบัญชีตนเอง  200.00  2,534.56",
	"ยอดรวมรายการ",
}

func TestParseBBLLinesMultiLineRecord(t *testing.T) {
	rows := ParseBBLLines(bblFixture)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[0]
	// Continuation line is folded into the record.
	if r.CounterpartyRef != "x1234" || r.CounterpartyName != "SOMCHAI J" {
		t.Fatalf("counterparty = (%q, %q)", r.CounterpartyRef, r.CounterpartyName)
	}
	// First grouped amount is the transaction, the one after it the balance.
	if !r.Amount.Equal(mustDecimal(t, "500.00")) {
		t.Fatalf("amount = %v", r.Amount)
	}
	if r.PaymentMethod != MethodPromptPay {
		t.Fatalf("method = %q", r.PaymentMethod)
	}
	// Buddhist Era year on the dated line.
	if r.TransactionDate != "2025-01-03" || r.TransactionTime != "10:23" {
		t.Fatalf("date/time = %q %q", r.TransactionDate, r.TransactionTime)
	}
	if r.TransactionType != TypeExpense {
		t.Fatalf("type = %q", r.TransactionType)
	}
}

func TestParseBBLLinesFlushAtEOF(t *testing.T) {
	rows := ParseBBLLines(bblFixture)
	r := rows[1]
	if r.TransactionType != TypeIncome {
		t.Fatalf("type = %q", r.TransactionType)
	}
	if !r.Amount.Equal(mustDecimal(t, "1000.00")) {
		t.Fatalf("amount = %v", r.Amount)
	}
	if r.TransactionDate != "2025-01-05" {
		t.Fatalf("date = %q", r.TransactionDate)
	}
}

func TestParseBBLLinesSkipsOwnAccountTransfers(t *testing.T) {
	for _, r := range ParseBBLLines(bblFixture) {
		if r.TransactionDate == "2025-01-06" {
			t.Fatal("own-account transfer record should be skipped")
		}
	}
}

func TestParseBBLLinesRejectsWithoutHeader(t *testing.T) {
	if rows := ParseBBLLines(bblFixture[2:]); rows != nil {
		t.Fatalf("got %d rows, want nil", len(rows))
	}
}

func TestParseBBLLinesIgnoreLinesMidRecord(t *testing.T) {
	rows := ParseBBLLines([]string{
		"Bangkok Bank e-statement",
		"04/01/68 14:10 โอนเงิน",
		"page 2 / 3",
		"ไปยัง KBANK x9876 SOMSRI K  750.00  984.56",
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[0]
	if !r.Amount.Equal(mustDecimal(t, "750.00")) {
		t.Fatalf("amount = %v", r.Amount)
	}
	if r.CounterpartyRef != "x9876" || r.CounterpartyName != "SOMSRI K" {
		t.Fatalf("counterparty = (%q, %q)", r.CounterpartyRef, r.CounterpartyName)
	}
	// Amount and balance columns on the continuation line are not description.
	if r.Description != "โอนเงิน ไปยัง KBANK x9876 SOMSRI K" {
		t.Fatalf("description = %q", r.Description)
	}
}
