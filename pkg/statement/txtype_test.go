package statement

import "testing"

func TestInferTransactionType(t *testing.T) {
	if got, conf := InferTransactionType("ATM WITHDRAW 500.00"); got != TypeExpense || conf != 0.75 {
		t.Fatalf("got (%q, %v)", got, conf)
	}
	if got, conf := InferTransactionType("SALARY DEPOSIT CR"); got != TypeIncome || conf != 0.75 {
		t.Fatalf("got (%q, %v)", got, conf)
	}
	if got, conf := InferTransactionType("STARBUCKS"); got != "" || conf != 0 {
		t.Fatalf("got (%q, %v), want none", got, conf)
	}
}

func TestApplyTransferOverridesCardBillPayment(t *testing.T) {
	// Card bill payments are transfers regardless of base direction.
	if got := ApplyTransferOverrides(TypeExpense, "ชำระเงินบัตรเครดิต KTC"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
	if got := ApplyTransferOverrides(TypeIncome, "Payment-SCB(014)Internet"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
}

func TestApplyTransferOverridesBrokerage(t *testing.T) {
	if got := ApplyTransferOverrides(TypeExpense, "DIME! SEC TOP UP"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
	if got := ApplyTransferOverrides(TypeExpense, "ซื้อกองทุน SCBS"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
}

func TestApplyTransferOverridesNamedBank(t *testing.T) {
	// Outgoing transfer phrasing plus a named bank.
	if got := ApplyTransferOverrides(TypeExpense, "โอนเงินไป KBANK x5678"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
	if got := ApplyTransferOverrides(TypeIncome, "รับโอนเงินจาก SCB x1234 SOMCHAI J"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
	// Transfer phrasing without a bank token stays a merchant payment.
	if got := ApplyTransferOverrides(TypeExpense, "โอนเงินไป ร้านกาแฟ"); got != TypeExpense {
		t.Fatalf("got %q", got)
	}
	// Direction mismatch: incoming phrasing cannot flip an expense.
	if got := ApplyTransferOverrides(TypeExpense, "รับโอนเงินจาก SCB x1234"); got != TypeExpense {
		t.Fatalf("got %q", got)
	}
}

func TestApplyTransferOverridesStable(t *testing.T) {
	if got := ApplyTransferOverrides(TypeTransfer, "โอนเงินไป KBANK"); got != TypeTransfer {
		t.Fatalf("got %q", got)
	}
	if got := ApplyTransferOverrides("", "โอนเงินไป KBANK"); got != "" {
		t.Fatalf("got %q, want empty passthrough", got)
	}
}
