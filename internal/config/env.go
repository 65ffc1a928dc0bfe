package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// TokenEnv carries the tracker bearer token.
	TokenEnv = "JIRA_TOKEN"

	// JournalEnv overrides the upload journal database path.
	JournalEnv = "JT_JOURNAL"

	// LogLevelEnv sets the zerolog level (debug, info, warn, error).
	LogLevelEnv = "JT_LOG_LEVEL"
)

// ErrMissingToken indicates the bearer token environment variable is unset.
var ErrMissingToken = errors.New("tracker token not set")

// TokenFromEnv returns the bearer token from JIRA_TOKEN.
func TokenFromEnv() (string, error) {
	token := strings.TrimSpace(os.Getenv(TokenEnv))
	if token == "" {
		return "", errors.WithHintf(ErrMissingToken,
			"export %s with a personal access token for the tracker", TokenEnv)
	}
	return token, nil
}

// JournalPath returns $JT_JOURNAL, or jt/journal.db in the user config directory.
func JournalPath() (string, error) {
	if p := os.Getenv(JournalEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "finding user config directory")
	}
	return filepath.Join(dir, "jt", "journal.db"), nil
}

// LogLevel returns the requested log level, or "" when unset.
func LogLevel() string {
	return strings.TrimSpace(os.Getenv(LogLevelEnv))
}
