// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/notafinal/notafinal/internal/domain/policy"
)

// Default upload limits.
const (
	defaultMaxUploadBytes = 5 << 20 // 5 MiB, same cap the original service enforced
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PolicyFile is the path of the persisted policy snapshot. Empty
	// disables persistence; the policy then lives in memory only.
	PolicyFile string `koanf:"policy_file"`

	// WatchPolicyFile enables reloading the policy when the snapshot file
	// is edited outside the service.
	WatchPolicyFile bool `koanf:"watch_policy_file"`

	// MaxUploadBytes caps the size of an uploaded CSV file.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// StartTime, CutoffTime and MaxPercent seed the grading policy when no
	// snapshot exists yet.
	StartTime  string  `koanf:"start_time"`
	CutoffTime string  `koanf:"cutoff_time"`
	MaxPercent float64 `koanf:"max_percent"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		PolicyFile:      "data/policy.json",
		WatchPolicyFile: false,
		MaxUploadBytes:  defaultMaxUploadBytes,
		StartTime:       policy.DefaultStartTime,
		CutoffTime:      policy.DefaultCutoffTime,
		MaxPercent:      policy.DefaultMaxPercent,
	}
}
