package world

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// Name is the registry name of the engine.
const Name = "world"

const (
	// defaultF0 replaces unvoiced frames in the spectral stages and sets the
	// pulse rate of unvoiced excitation during synthesis.
	defaultF0 = 500.0

	safeGuardMinimum = 1e-12
	maxAperiodicity  = 1 - 1e-12
	minAperiodicity  = 0.001
)

var errBufferShape = fmt.Errorf("world: buffer: %w", vocoder.ErrShapeMismatch)

func init() {
	engine.Register(Name, func() (engine.Engine, error) {
		return New(), nil
	})
}

// Engine implements engine.Engine. It is safe for concurrent use; FFT plans
// are pooled per size.
type Engine struct {
	plans planCache
}

var _ engine.Engine = (*Engine)(nil)

// New returns a ready engine.
func New() *Engine {
	return &Engine{}
}

// Name returns "world".
func (e *Engine) Name() string { return Name }

// FrameCountForPitch returns the number of frames DetectPitch emits.
func (e *Engine) FrameCountForPitch(sampleRate, signalLength int, framePeriodMs float64) int {
	return shape.FrameCount(sampleRate, signalLength, framePeriodMs)
}

// FFTSizeForEnvelope returns the envelope transform length.
func (e *Engine) FFTSizeForEnvelope(sampleRate int, opt engine.EnvelopeOptions) int {
	return shape.FFTSize(sampleRate, opt.F0Floor)
}

type planCache struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

func (c *planCache) pool(n int) *sync.Pool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pools == nil {
		c.pools = make(map[int]*sync.Pool)
	}
	p, ok := c.pools[n]
	if !ok {
		p = &sync.Pool{}
		c.pools[n] = p
	}
	return p
}

// get returns an FFT plan of size n. Release it with put.
func (c *planCache) get(n int) (*algofft.Plan[complex128], error) {
	if v := c.pool(n).Get(); v != nil {
		return v.(*algofft.Plan[complex128]), nil
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("world: failed to create FFT plan (n=%d): %w", n, err)
	}
	return plan, nil
}

func (c *planCache) put(n int, p *algofft.Plan[complex128]) {
	c.pool(n).Put(p)
}

func checkFrames(timeAxis, f0 []float64) error {
	if len(timeAxis) != len(f0) {
		return fmt.Errorf("%w: time axis has %d frames, f0 has %d", errBufferShape, len(timeAxis), len(f0))
	}
	return nil
}

func checkRows(out [][]float64, frames, bins int) error {
	if len(out) != frames {
		return fmt.Errorf("%w: %d output rows for %d frames", errBufferShape, len(out), frames)
	}
	for i, row := range out {
		if len(row) != bins {
			return fmt.Errorf("%w: row %d has %d bins, want %d", errBufferShape, i, len(row), bins)
		}
	}
	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// clampIndex implements edge replication for frame windows reaching past the
// signal.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// planFFT is the subset of an algo-fft plan used by the stages.
type planFFT interface {
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}
