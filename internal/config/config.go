// Package config loads and saves the jt.toml configuration file.
package config

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/oserror"
)

const (
	// FileName is the configuration file name inside the user config directory.
	FileName = "jt.toml"

	// DefaultDailyTargetMinutes is an eight hour working day.
	DefaultDailyTargetMinutes = 480
)

var (
	// ErrConfigNotFound indicates no configuration file exists at the expected path.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfig indicates the configuration file parsed but failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config mirrors jt.toml.
type Config struct {
	APIEndpoint                 string          `toml:"api_endpoint"`
	Worker                      string          `toml:"worker"`
	Reviewer                    string          `toml:"reviewer,omitempty"`
	DailyTargetTimeSpentMinutes int             `toml:"daily_target_time_spent_minutes,omitzero"`
	DefaultTimeSpentMinutes     int             `toml:"default_time_spent_minutes,omitzero"`
	StaticTasks                 []StaticTask    `toml:"static_tasks,omitempty"`
	StaticAttributes            []WorkAttribute `toml:"static_attributes,omitempty"`
	DynamicAttributes           []WorkAttribute `toml:"dynamic_attributes,omitempty"`
}

type StaticTask struct {
	Key         string          `toml:"key"`
	Description string          `toml:"description"`
	Attributes  []WorkAttribute `toml:"attributes,omitempty"`
}

type WorkAttribute struct {
	Key             string `toml:"key"`
	Name            string `toml:"name"`
	WorkAttributeID int64  `toml:"work_attribute_id"`
	Value           string `toml:"value"`
}

// Path returns the configuration file location: $JT_CONFIG when set,
// otherwise jt.toml in the user configuration directory.
func Path() (string, error) {
	if p := os.Getenv("JT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "finding user config directory")
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if oserror.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.Wrapf(ErrConfigNotFound, "%s", path),
				"run `jt init` to create one")
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the parent directory when needed.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if _, err := ParseEndpoint(c.APIEndpoint); err != nil {
		return err
	}
	if c.Worker == "" {
		return errors.WithHint(errors.Wrap(ErrInvalidConfig, "worker is required"),
			"run `jt init` to resolve your worker key")
	}
	if c.DailyTargetTimeSpentMinutes < 0 {
		return errors.Wrapf(ErrInvalidConfig, "daily_target_time_spent_minutes must not be negative, got %d", c.DailyTargetTimeSpentMinutes)
	}
	if c.DefaultTimeSpentMinutes < 0 {
		return errors.Wrapf(ErrInvalidConfig, "default_time_spent_minutes must not be negative, got %d", c.DefaultTimeSpentMinutes)
	}
	for i, t := range c.StaticTasks {
		if t.Key == "" {
			return errors.Wrapf(ErrInvalidConfig, "static_tasks[%d] has no key", i)
		}
	}
	return nil
}

// ParseEndpoint parses an absolute http(s) tracker URL. The path is
// normalised to end in a slash so relative API paths resolve beneath it.
func ParseEndpoint(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.Wrap(ErrInvalidConfig, "api_endpoint is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "api_endpoint %q", raw), ErrInvalidConfig)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Wrapf(ErrInvalidConfig, "api_endpoint %q must be an absolute http(s) URL", raw)
	}
	if len(u.Path) == 0 || u.Path[len(u.Path)-1] != '/' {
		u.Path += "/"
	}
	return u, nil
}

// Endpoint returns the parsed tracker base URL.
func (c *Config) Endpoint() (*url.URL, error) {
	return ParseEndpoint(c.APIEndpoint)
}

// DailyTarget returns the per-day time target, defaulting to eight hours.
func (c *Config) DailyTarget() time.Duration {
	if c.DailyTargetTimeSpentMinutes == 0 {
		return DefaultDailyTargetMinutes * time.Minute
	}
	return time.Duration(c.DailyTargetTimeSpentMinutes) * time.Minute
}

// DefaultDuration returns the configured per-entry duration, or zero when unset.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultTimeSpentMinutes) * time.Minute
}

// Tasks returns the configured static tasks.
func (c *Config) Tasks() []domain.Task {
	tasks := make([]domain.Task, 0, len(c.StaticTasks))
	for _, t := range c.StaticTasks {
		tasks = append(tasks, &domain.StaticTask{
			TaskKey:     t.Key,
			Description: t.Description,
			Attributes:  toDomain(t.Attributes),
		})
	}
	return tasks
}

func (c *Config) StaticAttributeTemplates() []domain.WorkAttribute {
	return toDomain(c.StaticAttributes)
}

func (c *Config) DynamicAttributeTemplates() []domain.WorkAttribute {
	return toDomain(c.DynamicAttributes)
}

func toDomain(attrs []WorkAttribute) []domain.WorkAttribute {
	out := make([]domain.WorkAttribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, domain.WorkAttribute{
			Key:             a.Key,
			Name:            a.Name,
			WorkAttributeID: a.WorkAttributeID,
			Value:           a.Value,
		})
	}
	return out
}
