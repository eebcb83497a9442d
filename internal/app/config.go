package app

// Default configuration constants
const (
	DefaultLogDir        = ""   // Transcript disabled
	DefaultRetentionDays = 30   // Days of transcripts kept on start
	DefaultLogRotateUTC  = true // Rotate transcripts on UTC midnight
)

// Config holds application configuration
type Config struct {
	Strict        bool
	LogDir        string
	LogRotateUTC  bool
	RetentionDays int
	Verbose       bool
	ShowVersion   bool
}

// DefaultConfig returns the configuration used when no flags are given
func DefaultConfig() Config {
	return Config{
		LogDir:        DefaultLogDir,
		LogRotateUTC:  DefaultLogRotateUTC,
		RetentionDays: DefaultRetentionDays,
	}
}
