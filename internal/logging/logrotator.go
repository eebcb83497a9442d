package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// TranscriptPrefix names every transcript file: <prefix>_YYYY-MM-DD.log
const TranscriptPrefix = "morse"

const dateLayout = "2006-01-02"

// LogRotator is a daily rotated, append-only transcript. A day's file is
// gzip compressed once the next day's file is opened.
type LogRotator struct {
	logDir      string
	useUTC      bool
	logger      *logrus.Logger
	now         func() time.Time
	currentFile *os.File
	currentDate string
	mutex       sync.RWMutex
	compressing sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewLogRotator creates logDir if needed and opens today's transcript
func NewLogRotator(logDir string, useUTC bool, logger *logrus.Logger) (*LogRotator, error) {
	return newLogRotator(logDir, useUTC, logger, time.Now)
}

func newLogRotator(logDir string, useUTC bool, logger *logrus.Logger, now func() time.Time) (*LogRotator, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := &LogRotator{
		logDir: logDir,
		useUTC: useUTC,
		logger: logger,
		now:    now,
		ctx:    ctx,
		cancel: cancel,
	}

	r.mutex.Lock()
	err := r.openLocked(r.today())
	r.mutex.Unlock()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize transcript: %w", err)
	}

	return r, nil
}

// Start checks for a date change every minute until ctx or the rotator is done
func (r *LogRotator) Start(ctx context.Context) {
	r.logger.Debug("Starting transcript rotator")

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			if err := r.checkRotation(); err != nil {
				r.logger.WithError(err).Error("Failed to rotate transcript")
			}
		}
	}
}

// Write appends p to the current transcript, rotating first if the date changed
func (r *LogRotator) Write(p []byte) (int, error) {
	if err := r.checkRotation(); err != nil {
		return 0, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentFile == nil {
		return 0, fmt.Errorf("transcript is closed")
	}
	return r.currentFile.Write(p)
}

// GetWriter returns the current transcript file
func (r *LogRotator) GetWriter() (io.Writer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentFile == nil {
		return nil, fmt.Errorf("no current transcript file")
	}
	return r.currentFile, nil
}

func (r *LogRotator) today() string {
	now := r.now()
	if r.useUTC {
		now = now.UTC()
	}
	return now.Format(dateLayout)
}

func (r *LogRotator) fileName(date string) string {
	return filepath.Join(r.logDir, fmt.Sprintf("%s_%s.log", TranscriptPrefix, date))
}

// checkRotation reopens the transcript when the date has moved on
func (r *LogRotator) checkRotation() error {
	date := r.today()

	r.mutex.RLock()
	current, closed := r.currentDate, r.currentFile == nil
	r.mutex.RUnlock()
	if closed || current == date {
		return nil
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Another writer may have rotated while we waited
	if r.currentFile == nil || r.currentDate == date {
		return nil
	}

	r.logger.WithFields(logrus.Fields{
		"old_date": r.currentDate,
		"new_date": date,
	}).Info("Rotating transcript")

	return r.openLocked(date)
}

// openLocked closes the current file, queues it for compression and opens
// the file for date. Callers hold the write lock.
func (r *LogRotator) openLocked(date string) error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			r.logger.WithError(err).Error("Failed to close old transcript")
		}
		if r.currentDate != date {
			oldDate := r.currentDate
			r.compressing.Add(1)
			go func() {
				defer r.compressing.Done()
				r.compressLogFile(oldDate)
			}()
		}
		r.currentFile = nil
	}

	path := r.fileName(date)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open transcript %s: %w", path, err)
	}

	r.currentFile = file
	r.currentDate = date
	r.logger.WithField("file", path).Debug("Opened transcript")

	return nil
}

// compressLogFile replaces <date>.log with <date>.log.gz
func (r *LogRotator) compressLogFile(date string) {
	logFile := r.fileName(date)
	gzipFile := logFile + ".gz"

	fields := logrus.Fields{"source": logFile, "target": gzipFile}

	src, err := os.Open(logFile)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.WithFields(fields).Debug("Transcript missing, skipping compression")
			return
		}
		r.logger.WithError(err).WithFields(fields).Error("Failed to open transcript for compression")
		return
	}
	defer src.Close()

	if err := writeGzip(gzipFile, filepath.Base(logFile), src); err != nil {
		r.logger.WithError(err).WithFields(fields).Error("Failed to compress transcript")
		os.Remove(gzipFile)
		return
	}

	src.Close()
	if err := os.Remove(logFile); err != nil {
		r.logger.WithError(err).WithFields(fields).Error("Failed to remove compressed transcript")
		return
	}

	r.logger.WithFields(fields).Info("Transcript compressed")
}

func writeGzip(path, name string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	gz := gzip.NewWriter(dst)
	gz.Name = name
	gz.ModTime = time.Now()

	if _, err := io.Copy(gz, src); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return dst.Close()
}

// Close closes the current transcript and waits for pending compression
func (r *LogRotator) Close() error {
	r.cancel()

	r.mutex.Lock()
	var err error
	if r.currentFile != nil {
		err = r.currentFile.Close()
		r.currentFile = nil
	}
	r.mutex.Unlock()

	r.compressing.Wait()

	if err != nil {
		r.logger.WithError(err).Error("Failed to close transcript")
	}
	return err
}

// GetCurrentLogFile returns the path of the open transcript
func (r *LogRotator) GetCurrentLogFile() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.currentDate == "" {
		return ""
	}
	return r.fileName(r.currentDate)
}

// GetLogFiles returns all transcripts in the directory, compressed or not
func (r *LogRotator) GetLogFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.logDir, TranscriptPrefix+"_*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	return files, nil
}

// CleanupOldLogs removes transcripts not modified in the last maxDays days
func (r *LogRotator) CleanupOldLogs(maxDays int) (int, error) {
	if maxDays <= 0 {
		return 0, fmt.Errorf("maxDays must be positive")
	}

	files, err := r.GetLogFiles()
	if err != nil {
		return 0, err
	}

	cutoff := r.now().AddDate(0, 0, -maxDays)
	current := r.GetCurrentLogFile()

	removed := 0
	for _, file := range files {
		if file == current {
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			r.logger.WithError(err).WithField("file", file).Warn("Failed to stat transcript")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(file); err != nil {
			r.logger.WithError(err).WithField("file", file).Error("Failed to remove old transcript")
			continue
		}
		removed++
	}

	if removed > 0 {
		r.logger.WithField("count", removed).Info("Removed old transcripts")
	}
	return removed, nil
}
