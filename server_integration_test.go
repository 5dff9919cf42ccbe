package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"be04/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	// allow callers to pass nil for body safely
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	tmp := t.TempDir()
	_ = os.Setenv("UPLOAD_BASE", tmp)
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func uploadStatement(r http.Handler, token, filename string, content []byte) *httptest.ResponseRecorder {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, _ := mw.CreateFormFile("file", filename)
	_, _ = w.Write(content)
	_ = mw.Close()
	return performRequest(r, http.MethodPost, "/statements", buf, token, mw.FormDataContentType())
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register user
	regBody, _ := json.Marshal(map[string]string{"username": "user1", "password": "pass123"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"username": "user1", "password": "pass123"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 3. Create account
	acctBody, _ := json.Marshal(map[string]string{"name": "Main Savings", "account_type": "savings"})
	resp = performRequest(r, http.MethodPost, "/accounts", bytes.NewBuffer(acctBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("create account failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var acctResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &acctResp)
	accountID, _ := acctResp["id"].(float64)
	if accountID == 0 {
		t.Fatalf("no account id in response: %+v", acctResp)
	}

	// 4. Upload an unextractable document. Extraction degrades to an empty
	// result; the job still reaches review, with zero rows.
	content := []byte("not a real pdf")
	resp = uploadStatement(r, token, "statement.pdf", content)
	if resp.Code != 200 {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var upResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &upResp)
	jobID, _ := upResp["job_id"].(float64)
	if jobID == 0 {
		t.Fatalf("no job id in upload response: %+v", upResp)
	}
	if status, _ := upResp["status"].(string); status != "review" {
		t.Fatalf("expected review status got %q", status)
	}
	if rc, _ := upResp["row_count"].(float64); rc != 0 {
		t.Fatalf("expected zero rows got %v", rc)
	}

	// 5. Same bytes again is a duplicate regardless of filename
	resp = uploadStatement(r, token, "renamed.pdf", content)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate upload got %d body=%s", resp.Code, resp.Body.String())
	}
	var dupResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &dupResp)
	if existing, _ := dupResp["existing_job_id"].(float64); existing != jobID {
		t.Fatalf("existing_job_id = %v, want %v", existing, jobID)
	}

	// 6. Job is visible in listings and by id
	resp = performRequest(r, http.MethodGet, "/statements", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list jobs failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/statements/%.0f", jobID), nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("get job failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 7. Seed staging rows on the review job, the shape the parsers produce:
	// two complete, one missing its amount, one to be discarded.
	var user models.User
	if err := db.Where("username = ?", "user1").First(&user).Error; err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	amt := func(s string) *decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return &d
	}
	rows := []models.StagingTransaction{
		{OcrJobID: uint(jobID), UserID: user.ID, SortOrder: 0, ReviewStatus: models.RowPending,
			AmountTHB: amt("150.00"), TransactionType: "expense", Description: "STARBUCKS", TransactionDate: "2026-01-11"},
		{OcrJobID: uint(jobID), UserID: user.ID, SortOrder: 1, ReviewStatus: models.RowPending,
			AmountTHB: amt("5000.00"), TransactionType: "income", PaymentMethod: "bank_transfer", Description: "SALARY"},
		{OcrJobID: uint(jobID), UserID: user.ID, SortOrder: 2, ReviewStatus: models.RowPending,
			TransactionType: "expense", Description: "NO AMOUNT DETECTED"},
		{OcrJobID: uint(jobID), UserID: user.ID, SortOrder: 3, ReviewStatus: models.RowPending,
			AmountTHB: amt("999.00"), TransactionType: "expense", Description: "DISCARD ME"},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seeding staging rows failed: %v", err)
	}

	// 8. Edit a row; it becomes edited and keeps the correction
	editBody, _ := json.Marshal(map[string]any{"description": "SALARY JAN"})
	resp = performRequest(r, http.MethodPatch, fmt.Sprintf("/staging/%d", rows[1].ID), bytes.NewBuffer(editBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("edit row failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var edited models.StagingTransaction
	_ = json.Unmarshal(resp.Body.Bytes(), &edited)
	if edited.ReviewStatus != models.RowEdited || edited.Description != "SALARY JAN" {
		t.Fatalf("edited row = (%q, %q)", edited.ReviewStatus, edited.Description)
	}

	// 9. Discard a row
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/staging/%d/discard", rows[3].ID), nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("discard row failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 10. Commit: the two complete rows post, the amount-less one is skipped,
	// the discarded one is excluded entirely.
	commitBody, _ := json.Marshal(map[string]any{"default_account_id": uint(accountID)})
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/statements/%.0f/commit", jobID), bytes.NewBuffer(commitBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("commit failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var commitResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &commitResp)
	if c, _ := commitResp["committed"].(float64); c != 2 {
		t.Fatalf("committed = %v, want 2", c)
	}
	if s, _ := commitResp["skipped"].(float64); s != 1 {
		t.Fatalf("skipped = %v, want 1", s)
	}

	// 11. Skipped row stays pending, discarded row stays discarded
	var after models.StagingTransaction
	if err := db.First(&after, rows[2].ID).Error; err != nil {
		t.Fatalf("skipped row lookup failed: %v", err)
	}
	if after.ReviewStatus != models.RowPending {
		t.Fatalf("skipped row status = %q, want pending", after.ReviewStatus)
	}
	if err := db.First(&after, rows[3].ID).Error; err != nil {
		t.Fatalf("discarded row lookup failed: %v", err)
	}
	if after.ReviewStatus != models.RowDiscarded {
		t.Fatalf("discarded row status = %q, want discarded", after.ReviewStatus)
	}

	// 12. Only the committed rows appear in the ledger; an undetected
	// payment method is stored as unknown.
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/transactions?job_id=%.0f", jobID), nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list transactions failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var txs []models.Transaction
	_ = json.Unmarshal(resp.Body.Bytes(), &txs)
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	sawUnknown := false
	for _, tx := range txs {
		if tx.Description == "DISCARD ME" || tx.Description == "NO AMOUNT DETECTED" {
			t.Fatalf("uncommittable row reached the ledger: %q", tx.Description)
		}
		if tx.Description == "STARBUCKS" && tx.PaymentMethod == "unknown" {
			sawUnknown = true
		}
	}
	if !sawUnknown {
		t.Fatal("expected unknown payment method on the methodless row")
	}

	// 13. Commit is once only
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/statements/%.0f/commit", jobID), bytes.NewBuffer(commitBody), token, "application/json")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second commit got %d body=%s", resp.Code, resp.Body.String())
	}

	// 14. Commit against a missing job is 404
	resp = performRequest(r, http.MethodPost, "/statements/999999/commit", bytes.NewBuffer(commitBody), token, "application/json")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing job got %d body=%s", resp.Code, resp.Body.String())
	}

	// 15. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/statements", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list got %d", unauth.Code)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
