package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marcus/sheet/pkg/sheet"
)

const (
	// Dir holds the config file, the log and the history database.
	Dir        = ".sheet"
	configFile = Dir + "/config.yaml"
)

// Item is a list entry shown in the demo sheet body.
type Item struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Config is the on-disk demo configuration.
type Config struct {
	Snap           []sheet.SnapSpec `yaml:"snap"`
	Initial        *sheet.SnapSpec  `yaml:"initial"`
	Modal          bool             `yaml:"modal"`
	Backdrop       bool             `yaml:"backdrop"`
	BackdropColor  string           `yaml:"backdrop_color,omitempty"`
	DismissOnPress bool             `yaml:"dismiss_on_press"`
	Drag           *bool            `yaml:"drag,omitempty"`
	RowHeight      int              `yaml:"row_height,omitempty"`

	// RememberPosition stores the last settled spec as Initial.
	RememberPosition bool `yaml:"remember_position"`

	Title        string `yaml:"title,omitempty"`
	Items        []Item `yaml:"items,omitempty"`
	Markdown     string `yaml:"markdown,omitempty"`
	GlamourStyle string `yaml:"glamour_style,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	initial := sheet.Pct("50%")
	return &Config{
		Snap:           []sheet.SnapSpec{sheet.Px(0), sheet.Pct("50%"), sheet.Pct("80%")},
		Initial:        &initial,
		Backdrop:       true,
		DismissOnPress: true,
		Title:          "Sheet",
	}
}

// Path returns the config file path under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk. Fields missing from the file keep their
// defaults; a missing file yields Default().
func Load(baseDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetInitial stores spec as the initial position.
func SetInitial(baseDir string, spec sheet.SnapSpec) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.Initial = &spec
	return Save(baseDir, cfg)
}

// ClearInitial removes the stored initial position, so the sheet opens
// fully.
func ClearInitial(baseDir string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.Initial = nil
	return Save(baseDir, cfg)
}

// SheetConfig converts the file settings into a panel configuration.
// Callbacks and the screen height are left to the caller.
func (c *Config) SheetConfig() sheet.Config {
	cfg := sheet.Config{
		SnapPoints:               append([]sheet.SnapSpec(nil), c.Snap...),
		IsModal:                  c.Modal,
		IsBackDrop:               c.Backdrop,
		BackDropColor:            c.BackdropColor,
		IsBackDropDismissByPress: c.DismissOnPress,
	}
	if c.Initial != nil {
		initial := *c.Initial
		cfg.InitialPosition = &initial
	}
	if c.Drag != nil {
		drag := *c.Drag
		cfg.DragEnabled = &drag
	}
	return cfg
}
