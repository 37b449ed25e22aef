package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/Mavwarf/iconset/internal/history"
	"github.com/Mavwarf/iconset/internal/icon"
	"github.com/Mavwarf/iconset/internal/paths"
	"github.com/Mavwarf/iconset/internal/webhook"
)

// Storage backends for run history.
const (
	StorageSQLite = history.StorageSQLite
	StorageFile   = history.StorageFile
)

// DefaultMessage is the text published after a successful run.
const DefaultMessage = "iconset: {count} icons written to {dir} in {duration}"

// Style overrides the icon colours (hex strings) and arc completion.
type Style struct {
	Canvas     string  `json:"canvas,omitempty"`
	Background string  `json:"background,omitempty"`
	Ring       string  `json:"ring,omitempty"`
	Progress   string  `json:"progress,omitempty"`
	Check      string  `json:"check,omitempty"`
	Fraction   float64 `json:"fraction,omitempty"`
}

// MQTT configures publishing a run summary to a broker.
type MQTT struct {
	Broker   string `json:"broker"`
	Topic    string `json:"topic"`
	ClientID string `json:"client_id,omitempty"`
	QoS      int    `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Webhook is one HTTP endpoint notified after a run.
type Webhook struct {
	URL     string            `json:"url"`
	Format  string            `json:"format,omitempty"` // "text" | "json" | "slack" | "discord"
	Headers map[string]string `json:"headers,omitempty"`
}

// Publish holds the optional completion notifications.
type Publish struct {
	Message  string    `json:"message,omitempty"`
	MQTT     *MQTT     `json:"mqtt,omitempty"`
	Webhooks []Webhook `json:"webhooks,omitempty"`
}

// Config holds all settings. Every field has a working default so the
// tool runs with no config file at all.
type Config struct {
	OutputDir   string  `json:"output_dir,omitempty"`
	Log         bool    `json:"log,omitempty"`
	Storage     string  `json:"storage,omitempty"`
	HistoryPath string  `json:"history_path,omitempty"`
	Style       Style   `json:"style"`
	Publish     Publish `json:"publish"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	st := icon.DefaultStyle()
	return Config{
		OutputDir: paths.DefaultOutputDir,
		Storage:   StorageSQLite,
		Style: Style{
			Canvas:     icon.HexColor(st.Canvas),
			Background: icon.HexColor(st.Background),
			Ring:       icon.HexColor(st.Ring),
			Progress:   icon.HexColor(st.Progress),
			Check:      icon.HexColor(st.Check),
			Fraction:   st.Fraction,
		},
		Publish: Publish{Message: DefaultMessage},
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = DefaultConfig()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. iconset-config.json next to the running binary
//  3. iconset-config.json in the working directory
//
// With no file found the built-in defaults are returned.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	if _, err := os.Stat(paths.ConfigFileName); err == nil {
		return readConfig(paths.ConfigFileName)
	}

	return DefaultConfig(), nil
}

// Validate reports every invalid setting.
func Validate(cfg Config) error {
	var errs []error
	if cfg.OutputDir == "" {
		errs = append(errs, fmt.Errorf("output_dir is empty"))
	}
	if cfg.Storage != StorageSQLite && cfg.Storage != StorageFile {
		errs = append(errs, fmt.Errorf("storage %q: want %q or %q", cfg.Storage, StorageSQLite, StorageFile))
	}
	if _, err := cfg.IconStyle(); err != nil {
		errs = append(errs, err)
	}
	if m := cfg.Publish.MQTT; m != nil {
		if m.Broker == "" {
			errs = append(errs, fmt.Errorf("publish.mqtt: broker is required"))
		}
		if m.Topic == "" {
			errs = append(errs, fmt.Errorf("publish.mqtt: topic is required"))
		}
		if m.QoS < 0 || m.QoS > 2 {
			errs = append(errs, fmt.Errorf("publish.mqtt: qos %d out of range 0-2", m.QoS))
		}
	}
	for i, w := range cfg.Publish.Webhooks {
		if w.URL == "" {
			errs = append(errs, fmt.Errorf("publish.webhooks[%d]: url is required", i))
		}
		if !webhook.ValidFormat(w.Format) {
			errs = append(errs, fmt.Errorf("publish.webhooks[%d]: unknown format %q", i, w.Format))
		}
	}
	return errors.Join(errs...)
}

// IconStyle converts the style settings into renderer colours.
func (c Config) IconStyle() (icon.Style, error) {
	st := icon.DefaultStyle()
	colours := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"canvas", c.Style.Canvas, &st.Canvas},
		{"background", c.Style.Background, &st.Background},
		{"ring", c.Style.Ring, &st.Ring},
		{"progress", c.Style.Progress, &st.Progress},
		{"check", c.Style.Check, &st.Check},
	}
	for _, f := range colours {
		if f.hex == "" {
			continue
		}
		v, err := icon.ParseHexColor(f.hex)
		if err != nil {
			return icon.Style{}, fmt.Errorf("style.%s: %w", f.name, err)
		}
		*f.dst = v
	}
	if c.Style.Fraction < 0 || c.Style.Fraction > 1 {
		return icon.Style{}, fmt.Errorf("style.fraction %v out of range 0-1", c.Style.Fraction)
	}
	if c.Style.Fraction > 0 {
		st.Fraction = c.Style.Fraction
	}
	return st, nil
}

// HistoryFile returns where run history is stored.
func (c Config) HistoryFile() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	if c.Storage == StorageFile {
		return filepath.Join(paths.DataDir(), paths.HistoryLogName)
	}
	return filepath.Join(paths.DataDir(), paths.HistoryDBName)
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
