package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Night struct {
	From  int `yaml:"from"`  // first night hour
	Until int `yaml:"until"` // first day hour
}

type Brightness struct {
	Day   int `yaml:"day"`
	Night int `yaml:"night"`
}

type Text struct {
	Row int `yaml:"row"`
}

type Countdown struct {
	Label string `yaml:"label"`
	Done  string `yaml:"done"`
}

// Font is an optional TrueType/OpenType file; empty Path means the
// built-in 7x13 face.
type Font struct {
	Path string  `yaml:"path,omitempty"`
	Size float64 `yaml:"size,omitempty"` // pixels
}

type Odometer struct {
	Digits      int      `yaml:"digits"`
	Spacing     int      `yaml:"spacing"`
	Every       int      `yaml:"every"` // frames per odometer step
	DayColors   []uint32 `yaml:"day_colors,omitempty"`
	NightColors []uint32 `yaml:"night_colors,omitempty"`
}

type SPI struct {
	Ports   []string `yaml:"ports"` // one per panel, top group first
	FreqKHz int      `yaml:"freq_khz"`
}

type Console struct {
	Gain    int `yaml:"gain"`
	EveryMS int `yaml:"every_ms"`
}

type Config struct {
	Driver   string `yaml:"driver"` // "spi" | "console" | "sim"
	FPS      int    `yaml:"fps"`
	Panels   int    `yaml:"panels"` // per group
	Deadline string `yaml:"deadline"`
	Location string `yaml:"location"`

	Night      Night      `yaml:"night"`
	Brightness Brightness `yaml:"brightness"`
	Text       Text       `yaml:"text"`
	Font       Font       `yaml:"font,omitempty"`
	Countdown  Countdown  `yaml:"countdown"`
	Messages   []string   `yaml:"messages,omitempty"`
	Odometer   Odometer   `yaml:"odometer"`
	SPI        SPI        `yaml:"spi,omitempty"`
	Console    Console    `yaml:"console,omitempty"`
}

// Default is what runs without a config file. Empty Messages and colors
// mean the built-in tables.
func Default() Config {
	return Config{
		Driver:     "console",
		FPS:        30,
		Panels:     4,
		Deadline:   "2030-01-01T00:00:00Z",
		Location:   "UTC",
		Night:      Night{From: 20, Until: 8},
		Brightness: Brightness{Day: 8, Night: 64},
		Text:       Text{Row: -1},
		Font:       Font{Size: 13},
		Countdown: Countdown{
			Label: "Countdown ends in",
			Done:  `\0The countdown is over!`,
		},
		Odometer: Odometer{Digits: 7, Spacing: 9, Every: 2},
		SPI: SPI{
			Ports: []string{
				"/dev/spidev0.0", "/dev/spidev0.1", "/dev/spidev1.0", "/dev/spidev1.1",
				"/dev/spidev2.0", "/dev/spidev2.1", "/dev/spidev3.0", "/dev/spidev3.1",
			},
			FreqKHz: 2500,
		},
		Console: Console{Gain: 8, EveryMS: 100},
	}
}

// Load reads path over Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// DeadlineTime parses Deadline as RFC 3339.
func (c *Config) DeadlineTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.Deadline)
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline %q: %w", c.Deadline, ErrInvalid)
	}
	return t, nil
}

// Zone loads Location; empty means UTC.
func (c *Config) Zone() (*time.Location, error) {
	if c.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("location %q: %v: %w", c.Location, err, ErrInvalid)
	}
	return loc, nil
}

func (c *Config) Validate() error {
	invalid := func(format string, a ...any) error {
		return fmt.Errorf(format+": %w", append(a, ErrInvalid)...)
	}
	switch c.Driver {
	case "spi", "console", "sim":
	default:
		return invalid("driver %q", c.Driver)
	}
	if c.FPS <= 0 {
		return invalid("fps %d", c.FPS)
	}
	if c.Panels <= 0 {
		return invalid("panels %d", c.Panels)
	}
	if c.Brightness.Day < 1 || c.Brightness.Night < 1 {
		return invalid("brightness %d/%d", c.Brightness.Day, c.Brightness.Night)
	}
	if c.Night.From < 0 || c.Night.From > 23 || c.Night.Until < 0 || c.Night.Until > 23 {
		return invalid("night %d..%d", c.Night.From, c.Night.Until)
	}
	if c.Odometer.Digits <= 0 || c.Odometer.Every < 1 {
		return invalid("odometer digits=%d every=%d", c.Odometer.Digits, c.Odometer.Every)
	}
	// nrzled only clocks WS2812 bits at 2.5 MHz.
	if c.SPI.FreqKHz != 0 && c.SPI.FreqKHz != 2500 {
		return invalid("spi freq_khz %d", c.SPI.FreqKHz)
	}
	if c.Font.Path != "" && c.Font.Size <= 0 {
		return invalid("font size %v", c.Font.Size)
	}
	if _, err := c.DeadlineTime(); err != nil {
		return err
	}
	if _, err := c.Zone(); err != nil {
		return err
	}
	return nil
}
