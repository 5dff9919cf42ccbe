package models

import "time"

// OcrJob lifecycle states.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobReview     = "review"
	JobCommitted  = "committed"
	JobFailed     = "failed"
)

// OcrJob tracks one uploaded statement from upload through commit. Jobs are
// never deleted; failed and committed jobs stay as an audit trail.
type OcrJob struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"not null;index;uniqueIndex:idx_user_filehash"`
	FileName  string `gorm:"size:255;not null"`
	// Sha256 of the uploaded bytes; backs per-user duplicate rejection.
	FileHash      string `gorm:"size:64;not null;uniqueIndex:idx_user_filehash"`
	StorePath     string `gorm:"size:512"`
	FileSizeBytes int64
	Status        string `gorm:"size:16;not null;default:pending;index"`
	// Diagnostic record of which strategy/format produced the rows.
	RawOutput    JSONMap `gorm:"type:jsonb"`
	ErrorMessage string  `gorm:"size:1024"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CommittedAt  *time.Time
	Rows         []StagingTransaction `gorm:"foreignKey:OcrJobID"`
}

func (j *OcrJob) MarkProcessing() {
	now := time.Now().UTC()
	j.Status = JobProcessing
	j.StartedAt = &now
}

func (j *OcrJob) MarkReview(raw JSONMap) {
	now := time.Now().UTC()
	j.Status = JobReview
	j.RawOutput = raw
	j.CompletedAt = &now
}

func (j *OcrJob) MarkCommitted() {
	now := time.Now().UTC()
	j.Status = JobCommitted
	j.CommittedAt = &now
}

func (j *OcrJob) MarkFailed(errMsg string) {
	now := time.Now().UTC()
	j.Status = JobFailed
	j.ErrorMessage = errMsg
	j.CompletedAt = &now
}
