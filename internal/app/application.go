package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"gomorse/internal/logging"
	"gomorse/internal/morse"
)

// Stats counts what a run converted
type Stats struct {
	Characters  int // bytes read in encode mode, whitespace excluded
	Unmapped    int // characters that produced the error code
	Codes       int // codes decoded
	Undecodable int // codes outside the decode table
	BadTokens   int // decode tokens that were not hex codes
}

// Application drives the codec over text or code streams
type Application struct {
	config     Config
	logger     *logrus.Logger
	transcript *logging.LogRotator
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	stats      Stats
}

// NewApplication creates a new application instance. Logs go to stderr so
// that stdout only carries conversions.
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Logger returns the application logger
func (app *Application) Logger() *logrus.Logger {
	return app.logger
}

// Stats returns the counters of the current run
func (app *Application) Stats() Stats {
	return app.stats
}

// Start opens the transcript when a log directory is configured
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
		"strict":     app.config.Strict,
	}).Debug("Starting gomorse")

	if app.config.LogDir == "" {
		return nil
	}

	rotator, err := logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize transcript: %w", err)
	}
	app.transcript = rotator

	if app.config.RetentionDays > 0 {
		if _, err := rotator.CleanupOldLogs(app.config.RetentionDays); err != nil {
			app.logger.WithError(err).Warn("Failed to clean up old transcripts")
		}
	}

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		rotator.Start(app.ctx)
	}()

	return nil
}

// EncodeText encodes every non-whitespace byte read from r and writes one
// "ch : dots" line per byte to w.
func (app *Application) EncodeText(r io.Reader, w io.Writer) error {
	out := app.newLineWriter(w)
	br := bufio.NewReader(r)

	sink := func(ch byte, code morse.Code) {
		out.printf("%c : %s\n", ch, code)
	}

	for {
		ch, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if isSpace(ch) {
			continue
		}

		app.stats.Characters++
		if !morse.Encode(ch, sink) {
			app.stats.Unmapped++
			app.logger.WithField("char", fmt.Sprintf("%q", ch)).Warn("No Morse mapping, sent error code")
		}
		if out.err != nil {
			return out.err
		}
	}

	app.logStats("encode")
	return nil
}

// DecodeText decodes whitespace separated hex codes ("0x4002" or "4002")
// read from r and writes one "0xCODE : ch" line per code to w. Tokens that
// do not parse, and in strict mode codes outside the decode table, are
// skipped and returned together once the input is exhausted.
func (app *Application) DecodeText(r io.Reader, w io.Writer) error {
	out := app.newLineWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	sink := func(code morse.Code, ch byte) {
		out.printf("0x%04X : %c\n", uint16(code), ch)
	}

	var result *multierror.Error
	for scanner.Scan() {
		token := scanner.Text()
		code, err := ParseCode(token)
		if err != nil {
			app.stats.BadTokens++
			app.logger.WithError(err).WithField("token", token).Debug("Skipping token")
			result = multierror.Append(result, err)
			continue
		}

		app.stats.Codes++
		if app.config.Strict {
			ch, err := morse.CodeToCharStrict(code)
			if err != nil {
				app.stats.Undecodable++
				result = multierror.Append(result, err)
				continue
			}
			sink(code, ch)
		} else if !morse.Decode(code, sink) {
			app.stats.Undecodable++
			app.logger.WithFields(logrus.Fields{
				"code":    fmt.Sprintf("0x%04X", uint16(code)),
				"symbols": code.String(),
			}).Warn("Code outside decode table, sent error character")
		}

		if out.err != nil {
			return out.err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	app.logStats("decode")
	return result.ErrorOrNil()
}

// ParseCode parses a packed code written in hex, with or without a 0x prefix
func ParseCode(token string) (morse.Code, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(token, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid code %q: %w", token, err)
	}
	return morse.Code(v), nil
}

// Shutdown stops the transcript rotator and closes the transcript
func (app *Application) Shutdown() {
	app.cancel()
	app.wg.Wait()

	if app.transcript != nil {
		if err := app.transcript.Close(); err != nil {
			app.logger.WithError(err).Warn("Failed to close transcript")
		}
		app.transcript = nil
	}
}

func (app *Application) logStats(mode string) {
	app.logger.WithFields(logrus.Fields{
		"mode":        mode,
		"characters":  app.stats.Characters,
		"unmapped":    app.stats.Unmapped,
		"codes":       app.stats.Codes,
		"undecodable": app.stats.Undecodable,
		"bad_tokens":  app.stats.BadTokens,
	}).Debug("Conversion statistics")
}

// lineWriter writes each result to the output and, when open, the
// transcript. It keeps the first error since sinks cannot return one.
type lineWriter struct {
	w          io.Writer
	transcript io.Writer
	logger     *logrus.Logger
	err        error
}

func (app *Application) newLineWriter(w io.Writer) *lineWriter {
	lw := &lineWriter{w: w, logger: app.logger}
	if app.transcript != nil {
		lw.transcript = app.transcript
	}
	return lw
}

func (lw *lineWriter) printf(format string, args ...interface{}) {
	if lw.err != nil {
		return
	}
	line := fmt.Sprintf(format, args...)

	if _, err := io.WriteString(lw.w, line); err != nil {
		lw.err = fmt.Errorf("failed to write output: %w", err)
		return
	}

	if lw.transcript != nil {
		if _, err := io.WriteString(lw.transcript, line); err != nil {
			lw.logger.WithError(err).Debug("Failed to write transcript")
		}
	}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
