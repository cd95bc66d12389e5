package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.SPI.Ports, 2*c.Panels)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: sim
deadline: "2026-12-24T18:00:00-08:00"
location: America/Los_Angeles
brightness:
  night: 32
messages:
  - '\3first'
  - '\1second'
odometer:
  day_colors: [0xFF0000, 0x00FF00]
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sim", c.Driver)
	assert.Equal(t, 8, c.Brightness.Day, "kept from defaults")
	assert.Equal(t, 32, c.Brightness.Night)
	assert.Equal(t, []string{`\3first`, `\1second`}, c.Messages)
	assert.Equal(t, []uint32{0xFF0000, 0x00FF00}, c.Odometer.DayColors)
	assert.Equal(t, 7, c.Odometer.Digits)

	d, err := c.DeadlineTime()
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2026, 12, 25, 2, 0, 0, 0, time.UTC)))
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"driver":   "driver: pwm",
		"fps":      "fps: 0",
		"divisor":  "brightness: {day: 0}",
		"night":    "night: {from: 24}",
		"deadline": "deadline: tomorrow",
		"every":    "odometer: {every: 0}",
		"font":     "font: {path: x.ttf, size: 0}",
		"freq":     "spi: {freq_khz: 800}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := Default()
	want.Messages = []string{`\2hi`}
	require.NoError(t, Save(path, &want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
