package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"be04/models"
	"be04/pkg/extract"
	"be04/pkg/statement"
)

// Workflow precondition errors surfaced to the HTTP layer.
var (
	ErrJobNotFound     = errors.New("ocr job not found")
	ErrJobNotReady     = errors.New("job is not in review state")
	ErrRowNotFound     = errors.New("staging row not found")
	ErrAccountNotFound = errors.New("account not found")
)

// DuplicateFileError rejects a re-upload of bytes the user already submitted,
// carrying the job that owns them.
type DuplicateFileError struct {
	ExistingJobID uint
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("file already uploaded (job %d)", e.ExistingJobID)
}

// textExtractTimeout bounds the external text-extraction call. Overridable
// via PDFTOTEXT_TIMEOUT (seconds).
func textExtractTimeout() time.Duration {
	if v := os.Getenv("PDFTOTEXT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			return d
		}
	}
	return extract.DefaultTextTimeout * time.Second
}

// SubmitJob hashes and stores the uploaded statement, creates the job and
// immediately runs the parse-and-stage step. On success the returned job is
// in review with its staging rows created.
func SubmitJob(userID uint, filename string, data []byte) (*models.OcrJob, error) {
	sum := sha256.Sum256(data)
	fileHash := hex.EncodeToString(sum[:])

	// Optimistic dedup check; the unique index on (user_id, file_hash)
	// catches the race below.
	var existing models.OcrJob
	if err := db.Where("user_id = ? AND file_hash = ?", userID, fileHash).First(&existing).Error; err == nil {
		return nil, &DuplicateFileError{ExistingJobID: existing.ID}
	}

	dir := filepath.Join(uploadBaseDir(), fmt.Sprint(userID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	storePath := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(filename))
	if err := os.WriteFile(storePath, data, 0644); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	job := models.OcrJob{
		UserID:        userID,
		FileName:      filename,
		FileHash:      fileHash,
		StorePath:     storePath,
		FileSizeBytes: int64(len(data)),
		Status:        models.JobPending,
	}
	if err := db.Create(&job).Error; err != nil {
		if isUniqueConstraintError(err) {
			if err2 := db.Where("user_id = ? AND file_hash = ?", userID, fileHash).First(&existing).Error; err2 == nil {
				return nil, &DuplicateFileError{ExistingJobID: existing.ID}
			}
		}
		return nil, err
	}

	if err := processAndStage(&job, data); err != nil {
		return &job, err
	}
	return &job, nil
}

// processAndStage runs the extraction pipeline and creates staging rows.
// Any failure is captured verbatim on the job before being returned, so the
// audit trail keeps the reason alongside the failed status.
func processAndStage(job *models.OcrJob, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse panic: %v", r)
		}
		if err != nil {
			job.MarkFailed(err.Error())
			if saveErr := db.Save(job).Error; saveErr != nil {
				log.Printf("job %d: failed to persist failure: %v", job.ID, saveErr)
			}
		}
	}()

	job.MarkProcessing()
	if err = db.Save(job).Error; err != nil {
		return err
	}

	result := runPipeline(data)

	staged := make([]models.StagingTransaction, 0, len(result.Rows))
	for _, row := range result.Rows {
		amount := row.Amount
		conf := make(models.JSONMap, len(row.Confidence))
		for k, v := range row.Confidence {
			conf[k] = v
		}
		staged = append(staged, models.StagingTransaction{
			OcrJobID:         job.ID,
			UserID:           job.UserID,
			SortOrder:        row.SortOrder,
			ReviewStatus:     models.RowPending,
			AmountTHB:        &amount,
			TransactionType:  row.TransactionType,
			PaymentMethod:    row.PaymentMethod,
			CounterpartyRef:  row.CounterpartyRef,
			CounterpartyName: row.CounterpartyName,
			Description:      row.Description,
			TransactionDate:  row.TransactionDate,
			Confidence:       conf,
			RawText:          row.RawText,
		})
	}
	if len(staged) > 0 {
		if err = db.Create(&staged).Error; err != nil {
			return err
		}
	}

	raw := models.JSONMap(result.RawOutput)
	raw["row_count"] = len(result.Rows)
	job.MarkReview(raw)
	return db.Save(job).Error
}

// runPipeline chains text extraction, format dispatch and the OCR fallback.
// It never fails: an unusable document yields zero rows with a diagnostic reason.
func runPipeline(data []byte) statement.Result {
	ctx, cancel := context.WithTimeout(context.Background(), textExtractTimeout())
	defer cancel()

	if lines := extract.TextLines(ctx, data); len(lines) > 0 {
		if rows, format := statement.Dispatch(lines); len(rows) > 0 {
			return statement.Result{
				RawOutput: map[string]any{"source": "pdftotext", "format": format, "lines": len(lines)},
				Rows:      rows,
				PageCount: 1,
			}
		}
	}

	detections, pages, err := extract.Detections(data)
	if err != nil {
		return statement.Result{
			RawOutput: map[string]any{"source": "none", "reason": err.Error()},
		}
	}
	rows := statement.RowsFromDetections(detections)
	return statement.Result{
		RawOutput: map[string]any{"source": "ocr", "detections": len(detections), "pages": pages},
		Rows:      rows,
		PageCount: pages,
	}
}

// stagingUpdate carries the user-editable staging fields; nil pointers leave
// the field untouched.
type stagingUpdate struct {
	AccountID        *uint            `json:"account_id"`
	CategoryID       *uint            `json:"category_id"`
	AmountTHB        *decimal.Decimal `json:"amount_thb"`
	OriginalAmount   *decimal.Decimal `json:"original_amount"`
	OriginalCurrency *string          `json:"original_currency"`
	ExchangeRate     *decimal.Decimal `json:"exchange_rate"`
	TransactionType  *string          `json:"transaction_type"`
	PaymentMethod    *string          `json:"payment_method"`
	CounterpartyRef  *string          `json:"counterparty_ref"`
	CounterpartyName *string          `json:"counterparty_name"`
	Description      *string          `json:"description"`
	TransactionDate  *string          `json:"transaction_date"`
	Tags             []string         `json:"tags"`
}

// UpdateStagingRow applies a user correction and marks the row edited.
// Confidence and raw text are OCR metadata and never writable.
func UpdateStagingRow(rowID, userID uint, upd stagingUpdate) (*models.StagingTransaction, error) {
	var row models.StagingTransaction
	if err := db.Where("id = ? AND user_id = ?", rowID, userID).First(&row).Error; err != nil {
		return nil, ErrRowNotFound
	}
	if upd.AccountID != nil {
		row.AccountID = upd.AccountID
	}
	if upd.CategoryID != nil {
		row.CategoryID = upd.CategoryID
	}
	if upd.AmountTHB != nil {
		row.AmountTHB = upd.AmountTHB
	}
	if upd.OriginalAmount != nil {
		row.OriginalAmount = upd.OriginalAmount
	}
	if upd.OriginalCurrency != nil {
		row.OriginalCurrency = *upd.OriginalCurrency
	}
	if upd.ExchangeRate != nil {
		row.ExchangeRate = upd.ExchangeRate
	}
	if upd.TransactionType != nil {
		row.TransactionType = *upd.TransactionType
	}
	if upd.PaymentMethod != nil {
		row.PaymentMethod = *upd.PaymentMethod
	}
	if upd.CounterpartyRef != nil {
		row.CounterpartyRef = *upd.CounterpartyRef
	}
	if upd.CounterpartyName != nil {
		row.CounterpartyName = *upd.CounterpartyName
	}
	if upd.Description != nil {
		row.Description = *upd.Description
	}
	if upd.TransactionDate != nil {
		row.TransactionDate = *upd.TransactionDate
	}
	if upd.Tags != nil {
		row.Tags = upd.Tags
	}
	row.MarkEdited()
	if err := db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DiscardStagingRow permanently excludes a row from commit.
func DiscardStagingRow(rowID, userID uint) error {
	var row models.StagingTransaction
	if err := db.Where("id = ? AND user_id = ?", rowID, userID).First(&row).Error; err != nil {
		return ErrRowNotFound
	}
	row.Discard()
	return db.Save(&row).Error
}

// CommitJob turns every committable staging row of a review job into a
// ledger transaction, exactly once. Rows missing amount or type are skipped
// and stay pending; the caller gets both counts so a partial commit is
// distinguishable from a full one.
func CommitJob(jobID, userID, defaultAccountID uint) (committed int, skipped int, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		var job models.OcrJob
		if err := tx.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
			return ErrJobNotFound
		}
		if job.Status != models.JobReview {
			return fmt.Errorf("%w (current: %s)", ErrJobNotReady, job.Status)
		}

		var rows []models.StagingTransaction
		if err := tx.Where("ocr_job_id = ? AND user_id = ? AND review_status <> ?",
			jobID, userID, models.RowDiscarded).Order("sort_order asc").Find(&rows).Error; err != nil {
			return err
		}

		for i := range rows {
			row := &rows[i]
			if !row.Committable() {
				skipped++
				continue
			}

			accountID := defaultAccountID
			if row.AccountID != nil {
				accountID = *row.AccountID
			}
			var account models.Account
			if err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
				return ErrAccountNotFound
			}

			txDate := time.Now().UTC()
			if row.TransactionDate != "" {
				if t, perr := time.Parse("2006-01-02", row.TransactionDate); perr == nil {
					txDate = t
				}
			}
			currency := row.OriginalCurrency
			if currency == "" {
				currency = "THB"
			}
			description := row.Description
			if description == "" {
				description = "(imported)"
			}
			method := row.PaymentMethod
			if method == "" {
				method = "unknown"
			}

			jobRef := job.ID
			rowRef := row.ID
			entry := models.Transaction{
				UserID:          userID,
				AccountID:       account.ID,
				CategoryID:      row.CategoryID,
				AmountTHB:       *row.AmountTHB,
				OriginalAmount:  row.OriginalAmount,
				Currency:        currency,
				ExchangeRate:    row.ExchangeRate,
				TransactionType: row.TransactionType,
				PaymentMethod:   method,
				Description:     description,
				TransactionDate: txDate,
				Tags:            row.Tags,
				SourceJobID:     &jobRef,
				StagingRowID:    &rowRef,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			row.Confirm()
			if err := tx.Save(row).Error; err != nil {
				return err
			}
			committed++
		}

		job.MarkCommitted()
		return tx.Save(&job).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return committed, skipped, nil
}
