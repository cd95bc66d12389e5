package led

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// DefaultFreq suits WS2812 chains driven by nrzled.
const DefaultFreq = 2500 * physic.KiloHertz

var ErrChannels = errors.New("channel count does not match strips")

// Strips drives one LED chain per panel.
type Strips struct {
	mu      sync.Mutex
	sinks   []Sink
	scratch [][]byte
	ports   []spi.PortCloser
	log     zerolog.Logger
}

// NewStrips wraps already opened chains, in channel order.
func NewStrips(sinks []Sink, log zerolog.Logger) *Strips {
	return &Strips{sinks: sinks, scratch: make([][]byte, len(sinks)), log: log}
}

// PortOpener opens an SPI port by name. spireg.Open is one.
type PortOpener func(name string) (spi.PortCloser, error)

// OpenStrips opens an nrzled device of pixels LEDs on every named SPI port.
// Ports already opened are released when a later one fails.
func OpenStrips(ports []string, pixels int, freq physic.Frequency, log zerolog.Logger) (*Strips, error) {
	return OpenStripsWith(spireg.Open, ports, pixels, freq, log)
}

// OpenStripsWith is OpenStrips with the ports opened by open.
func OpenStripsWith(open PortOpener, ports []string, pixels int, freq physic.Frequency, log zerolog.Logger) (*Strips, error) {
	if freq == 0 {
		freq = DefaultFreq
	}
	s := NewStrips(nil, log)
	for _, name := range ports {
		p, err := open(name)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open spi port %q: %w", name, err)
		}
		d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: pixels, Channels: 3, Freq: freq})
		if err != nil {
			_ = p.Close()
			_ = s.Close()
			return nil, fmt.Errorf("nrzled on %q: %w", name, err)
		}
		s.ports = append(s.ports, p)
		s.sinks = append(s.sinks, d)
		s.scratch = append(s.scratch, nil)
		log.Debug().Str("port", name).Int("pixels", pixels).Str("freq", freq.String()).Msg("strip ready")
	}
	return s, nil
}

// Len is the number of chains.
func (s *Strips) Len() int { return len(s.sinks) }

// Write sends channels[i] to chain i. The input is in wire order and is
// not kept.
func (s *Strips) Write(channels [][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(channels) != len(s.sinks) {
		return fmt.Errorf("%d channels for %d strips: %w", len(channels), len(s.sinks), ErrChannels)
	}
	var errs []error
	for i, grb := range channels {
		if cap(s.scratch[i]) < len(grb) {
			s.scratch[i] = make([]byte, len(grb))
		}
		rgb := s.scratch[i][:len(grb)]
		grbToRGB(rgb, grb)
		if _, err := s.sinks[i].Write(rgb); err != nil {
			errs = append(errs, fmt.Errorf("strip %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close blanks every chain and releases the ports.
func (s *Strips) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for i, d := range s.sinks {
		if err := d.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt strip %d: %w", i, err))
		}
	}
	for _, p := range s.ports {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.sinks, s.ports = nil, nil
	return errors.Join(errs...)
}
