package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomorse/internal/morse"
)

func newQuietApp(config Config) *Application {
	app := NewApplication(config)
	app.logger.SetOutput(io.Discard)
	return app
}

// TestDefaultConfig tests the default configuration
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultLogDir, config.LogDir)
	assert.Equal(t, DefaultRetentionDays, config.RetentionDays)
	assert.True(t, config.LogRotateUTC)
	assert.False(t, config.Strict)
	assert.False(t, config.Verbose)
}

// TestShowVersion tests the version output
func TestShowVersion(t *testing.T) {
	var buf bytes.Buffer
	ShowVersion(&buf)
	assert.Contains(t, buf.String(), "Version: "+Version)
	assert.Contains(t, buf.String(), "Git Commit: "+GitCommit)
}

// TestApplication_LoggerConfiguration tests logger levels
func TestApplication_LoggerConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		expected logrus.Level
	}{
		{name: "Verbose logging", verbose: true, expected: logrus.DebugLevel},
		{name: "Normal logging", verbose: false, expected: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApplication(Config{Verbose: tt.verbose})
			require.NotNil(t, app.Logger())
			assert.Equal(t, tt.expected, app.Logger().GetLevel())
		})
	}
}

// TestApplication_EncodeText tests the encode print format
func TestApplication_EncodeText(t *testing.T) {
	app := newQuietApp(DefaultConfig())
	require.NoError(t, app.Start())
	defer app.Shutdown()

	var out bytes.Buffer
	err := app.EncodeText(strings.NewReader("SOS 0?\n"), &out)
	require.NoError(t, err)

	expected := "S : ...\n" +
		"O : ---\n" +
		"S : ...\n" +
		"0 : -----\n" +
		"? : ..--..\n"
	assert.Equal(t, expected, out.String())
	assert.Equal(t, 5, app.Stats().Characters)
	assert.Equal(t, 0, app.Stats().Unmapped)
}

// TestApplication_EncodeText_Unmapped tests that unmapped characters send the error code
func TestApplication_EncodeText_Unmapped(t *testing.T) {
	app := newQuietApp(DefaultConfig())

	var out bytes.Buffer
	require.NoError(t, app.EncodeText(strings.NewReader("a#"), &out))

	assert.Equal(t, "a : .......\n# : .......\n", out.String())
	assert.Equal(t, 2, app.Stats().Unmapped)
}

// TestApplication_DecodeText tests the decode print format
func TestApplication_DecodeText(t *testing.T) {
	app := newQuietApp(DefaultConfig())

	var out bytes.Buffer
	err := app.DecodeText(strings.NewReader("0x4002 F805\n3006\t0x5406"), &out)
	require.NoError(t, err)

	expected := "0x4002 : A\n" +
		"0xF805 : 0\n" +
		"0x3006 : ?\n" +
		"0x5406 : e\n"
	assert.Equal(t, expected, out.String())
	assert.Equal(t, 4, app.Stats().Codes)
	assert.Equal(t, 1, app.Stats().Undecodable)
}

// TestApplication_DecodeText_BadTokens tests that bad tokens are collected
// and the rest of the input is still decoded
func TestApplication_DecodeText_BadTokens(t *testing.T) {
	app := newQuietApp(DefaultConfig())

	var out bytes.Buffer
	err := app.DecodeText(strings.NewReader("zz 0x4002 12345 8001"), &out)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.Equal(t, "0x4002 : A\n0x8001 : T\n", out.String())
	assert.Equal(t, 2, app.Stats().BadTokens)
}

// TestApplication_DecodeText_Strict tests strict validation
func TestApplication_DecodeText_Strict(t *testing.T) {
	config := DefaultConfig()
	config.Strict = true
	app := newQuietApp(config)

	var out bytes.Buffer
	err := app.DecodeText(strings.NewReader("0x4002 0x5406 0xF800"), &out)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	for _, e := range merr.Errors {
		assert.True(t, errors.Is(e, morse.ErrMalformedCode))
	}
	assert.Equal(t, "0x4002 : A\n", out.String())
	assert.Equal(t, 2, app.Stats().Undecodable)
}

// TestParseCode tests hex token parsing
func TestParseCode(t *testing.T) {
	tests := []struct {
		token    string
		expected morse.Code
		wantErr  bool
	}{
		{token: "0x4002", expected: 0x4002},
		{token: "0XF805", expected: 0xF805},
		{token: "3006", expected: 0x3006},
		{token: "7", expected: 0x0007},
		{token: "", wantErr: true},
		{token: "0x", wantErr: true},
		{token: "10000", wantErr: true},
		{token: "-1", wantErr: true},
		{token: ".-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			code, err := ParseCode(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

// TestApplication_Transcript tests that conversions are copied to the transcript
func TestApplication_Transcript(t *testing.T) {
	config := DefaultConfig()
	config.LogDir = t.TempDir()
	app := newQuietApp(config)
	require.NoError(t, app.Start())

	var out bytes.Buffer
	require.NoError(t, app.EncodeText(strings.NewReader("K"), &out))
	require.NoError(t, app.DecodeText(strings.NewReader("0xA003"), &out))

	path := app.transcript.GetCurrentLogFile()
	app.Shutdown()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "K : -.-\n0xA003 : K\n", string(content))
	assert.Equal(t, out.String(), string(content))
}

// TestApplication_TranscriptBadDir tests Start failing on an unusable log directory
func TestApplication_TranscriptBadDir(t *testing.T) {
	blocker := t.TempDir() + "/file"
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	config := DefaultConfig()
	config.LogDir = blocker + "/logs"
	app := newQuietApp(config)

	err := app.Start()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize transcript")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// TestApplication_OutputError tests that output failures stop the run
func TestApplication_OutputError(t *testing.T) {
	app := newQuietApp(DefaultConfig())

	err := app.EncodeText(strings.NewReader("ABC"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, app.Stats().Characters)
}
