package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"be04/models"
	"be04/pkg/extract"
	"be04/pkg/statement"
)

// Global DB handle for helper funcs
var db *gorm.DB

var verbose bool

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

// Main: scans a directory of statement PDFs, creates OcrJob rows, runs the
// parse pipeline to fill staging rows, optional watch mode.
func main() {
	dirFlag := flag.String("dir", "inbox", "directory to scan for statement PDFs")
	userID := flag.Uint("user-id", 0, "User ID to assign jobs to (if omitted uses admin)")
	dryRun := flag.Bool("dry-run", false, "Skip all DB writes; just parse and report row counts")
	watch := flag.Bool("watch", false, "Watch directory for new files")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-file logging")
	flag.Parse()

	if *dryRun {
		log.Printf("Dry-run: scanning %s (no DB interaction)", *dirFlag)
		files := listStatementFiles(*dirFlag)
		log.Printf("Found %d candidate files", len(files))
		for _, f := range files {
			data, err := os.ReadFile(filepath.Join(*dirFlag, f))
			if err != nil {
				log.Printf("read fail %s: %v", f, err)
				continue
			}
			result := parseStatement(data)
			log.Printf("%s source=%v format=%v rows=%d", f, result.RawOutput["source"], result.RawOutput["format"], len(result.Rows))
		}
		return
	}

	db = mustInitDBFromEnv()
	owner := resolveUser(*userID)

	files := listStatementFiles(*dirFlag)
	log.Printf("Scanning %d files (workers=%d)", len(files), effectiveWorkers(*workers))
	runWorkerPool(*dirFlag, owner, files, effectiveWorkers(*workers))

	if *watch {
		if err := watchDirectory(*dirFlag, owner, effectiveWorkers(*workers)); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// resolveUser finds the job owner either by explicit id or by admin username.
func resolveUser(id uint) models.User {
	var u models.User
	if id != 0 {
		if err := db.First(&u, id).Error; err != nil {
			log.Fatalf("failed to find user id %d: %v", id, err)
		}
		return u
	}
	if err := db.Where("username = ?", "admin").First(&u).Error; err != nil {
		log.Fatalf("no --user-id provided and admin user not found: %v", err)
	}
	return u
}

func listStatementFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".pdf"
}

func watchDirectory(dir string, owner models.User, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// simple debounce map of pending files
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	go runWorkerPool(dir, owner, nil, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}

// worker pool orchestrator
func runWorkerPool(dir string, owner models.User, initial []string, workers int, extraCh ...<-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(dir, name, owner)
			}
		}()
	}
	go func() {
		for _, f := range initial {
			fileCh <- f
		}
		for _, ch := range extraCh {
			go func(c <-chan string) {
				for n := range c {
					fileCh <- n
				}
			}(ch)
		}
		// if no extraCh (scan only) close when done
		if len(extraCh) == 0 {
			close(fileCh)
		}
	}()
	if len(extraCh) == 0 {
		wg.Wait()
	}
}

// processSingleFile submits one PDF: dedup by content hash, store, parse,
// stage rows and move the source file out of the inbox.
func processSingleFile(dir, name string, owner models.User) {
	filePath := filepath.Join(dir, name)
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("ERROR read %s: %v", name, err)
		return
	}
	sum := sha256.Sum256(data)
	fileHash := hex.EncodeToString(sum[:])

	var existing models.OcrJob
	if err := db.Where("user_id = ? AND file_hash = ?", owner.ID, fileHash).First(&existing).Error; err == nil {
		logV("SKIP duplicate %s (job %d)", name, existing.ID)
		_ = moveToProcessed(filePath, name)
		return
	}

	storeDir := filepath.Join(uploadBaseDir(), fmt.Sprint(owner.ID))
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		log.Printf("ERROR storage dir: %v", err)
		return
	}
	storePath := filepath.Join(storeDir, uuid.NewString()+"_"+name)
	if err := os.WriteFile(storePath, data, 0644); err != nil {
		log.Printf("ERROR store %s: %v", name, err)
		return
	}

	job := models.OcrJob{
		UserID:        owner.ID,
		FileName:      name,
		FileHash:      fileHash,
		StorePath:     storePath,
		FileSizeBytes: int64(len(data)),
		Status:        models.JobPending,
	}
	if err := db.Create(&job).Error; err != nil {
		if isUniqueConstraintError(err) { // race: someone else created
			logV("SKIP duplicate after race %s", name)
			return
		}
		log.Printf("ERROR create job %s: %v", name, err)
		return
	}
	log.Printf("NEW job id=%d file=%s", job.ID, name)

	job.MarkProcessing()
	_ = db.Save(&job).Error

	result := parseStatement(data)
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
		if err := db.Create(&staged).Error; err != nil {
			job.MarkFailed(err.Error())
			_ = db.Save(&job).Error
			return
		}
	}
	raw := models.JSONMap(result.RawOutput)
	raw["row_count"] = len(result.Rows)
	job.MarkReview(raw)
	if err := db.Save(&job).Error; err != nil {
		log.Printf("ERROR save job %d: %v", job.ID, err)
		return
	}
	log.Printf("STAGED job=%d rows=%d file=%s", job.ID, len(staged), name)

	if err := moveToProcessed(filePath, name); err != nil {
		log.Printf("WARN failed to move processed file %s: %v", name, err)
	} else {
		logV("moved processed %s", name)
	}
}

func parseStatement(data []byte) statement.Result {
	timeout := extract.DefaultTextTimeout * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
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
		return statement.Result{RawOutput: map[string]any{"source": "none", "reason": err.Error()}}
	}
	rows := statement.RowsFromDetections(detections)
	return statement.Result{
		RawOutput: map[string]any{"source": "ocr", "detections": len(detections), "pages": pages},
		Rows:      rows,
		PageCount: pages,
	}
}

// uploadBaseDir mirrors the server binary (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}

// moveToProcessed moves a handled PDF into <dir>/processed so rescans skip it.
func moveToProcessed(srcFullPath, name string) error {
	processedDir := filepath.Join(filepath.Dir(srcFullPath), "processed")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return err
	}
	return os.Rename(srcFullPath, filepath.Join(processedDir, name))
}
