package ir

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/room-raider/dsp/buffer"
	"github.com/cwbudde/room-raider/dsp/core"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = fmt.Errorf("%w: ir: impulse response is empty", core.ErrInvalidValue)
	ErrInvalidSampleRate = fmt.Errorf("%w: ir: sample rate must be positive", core.ErrInvalidValue)
	ErrInvalidTime       = fmt.Errorf("%w: ir: time must be positive", core.ErrInvalidValue)
	ErrNoDecay           = fmt.Errorf("%w: ir: insufficient decay for RT calculation", core.ErrProcessingFailed)
)

// Metrics holds impulse response analysis results.
type Metrics struct {
	PeakIndex  int           // sample index of the absolute maximum
	PeakTime   time.Duration // PeakIndex as time
	EDT        time.Duration
	T20        time.Duration
	T30        time.Duration
	RT60       time.Duration
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // ratio 0..1
	D80        float64 // ratio 0..1
	CenterTime time.Duration
}

// LogValue implements slog.LogValuer.
func (m Metrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("peak", m.PeakIndex),
		slog.Duration("edt", m.EDT),
		slog.Duration("t20", m.T20),
		slog.Duration("t30", m.T30),
		slog.Duration("rt60", m.RT60),
		slog.Float64("c50", round1(m.C50)),
		slog.Float64("c80", round1(m.C80)),
		slog.Float64("d50", round1(m.D50*100)/100),
		slog.Duration("ts", m.CenterTime),
	)
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	sampleRate float64
}

// NewAnalyzer creates an analyzer for responses sampled at sampleRate.
func NewAnalyzer(sampleRate int) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	return &Analyzer{sampleRate: float64(sampleRate)}, nil
}

// AnalyzeBuffer analyzes channel ch of b at the buffer's sample rate.
func AnalyzeBuffer(b *buffer.Buffer, ch int) (Metrics, error) {
	if b == nil || ch < 0 || ch >= b.Channels() {
		return Metrics{}, fmt.Errorf("%w: channel %d", ErrEmptyIR, ch)
	}

	a, err := NewAnalyzer(b.SampleRate())
	if err != nil {
		return Metrics{}, err
	}

	return a.Analyze(b.Channel(ch))
}

// Analyze computes all metrics of ir.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	peak := PeakIndex(ir)
	e := newEnergy(ir[peak:])
	curve := e.schroeder()

	m := Metrics{
		PeakIndex:  peak,
		PeakTime:   a.duration(float64(peak)),
		EDT:        a.decayTime(curve, 0, -10),
		T20:        a.decayTime(curve, -5, -25),
		T30:        a.decayTime(curve, -5, -35),
		C50:        e.clarity(a.samples(50 * time.Millisecond)),
		C80:        e.clarity(a.samples(80 * time.Millisecond)),
		D50:        e.definition(a.samples(50 * time.Millisecond)),
		D80:        e.definition(a.samples(80 * time.Millisecond)),
		CenterTime: a.duration(e.centroid()),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// Schroeder returns the normalized backward-integrated energy decay of ir
// in dB, floored at -200 dB.
//
//	S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func Schroeder(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return newEnergy(ir).schroeder(), nil
}

// RT60 returns T30 of ir, falling back to T20.
func (a *Analyzer) RT60(ir []float64) (time.Duration, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	curve := newEnergy(ir).schroeder()

	if rt := a.decayTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}

	if rt := a.decayTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// Clarity returns C(t) of ir in dB.
func (a *Analyzer) Clarity(ir []float64, boundary time.Duration) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if boundary <= 0 {
		return 0, ErrInvalidTime
	}

	return newEnergy(ir).clarity(a.samples(boundary)), nil
}

// Definition returns D(t) of ir as a ratio in [0, 1].
func (a *Analyzer) Definition(ir []float64, boundary time.Duration) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if boundary <= 0 {
		return 0, ErrInvalidTime
	}

	return newEnergy(ir).definition(a.samples(boundary)), nil
}

// CenterTime returns the energy centroid of ir.
func (a *Analyzer) CenterTime(ir []float64) (time.Duration, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	return a.duration(newEnergy(ir).centroid()), nil
}

// PeakIndex returns the index of the absolute maximum of x.
func PeakIndex(x []float64) int {
	best, peak := 0, 0.0

	for i, v := range x {
		if av := math.Abs(v); av > peak {
			best, peak = i, av
		}
	}

	return best
}

// decayTime fits a line to curve between the first samples at or below
// startDB and endDB and extrapolates it to -60 dB.
func (a *Analyzer) decayTime(curve []float64, startDB, endDB float64) time.Duration {
	start, end := -1, -1

	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}

		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}

	if start < 0 || end-start < 1 {
		return 0
	}

	y := curve[start : end+1]
	x := make([]float64, len(y))

	for i := range x {
		x[i] = float64(i)
	}

	_, slope := stat.LinearRegression(x, y, nil, false)
	if slope >= 0 || math.IsNaN(slope) {
		return 0
	}

	return a.duration(-60 / slope)
}

func (a *Analyzer) samples(d time.Duration) int {
	return core.DurationToSamples(d, a.sampleRate)
}

func (a *Analyzer) duration(samples float64) time.Duration {
	return time.Duration(samples / a.sampleRate * float64(time.Second))
}

// energy holds the running sum of squared samples.
type energy struct {
	squared []float64
	cum     []float64 // cum[i] = sum of squared[0..i]
}

func newEnergy(ir []float64) energy {
	sq := make([]float64, len(ir))
	floats.MulTo(sq, ir, ir)

	return energy{
		squared: sq,
		cum:     floats.CumSum(make([]float64, len(sq)), sq),
	}
}

func (e energy) total() float64 {
	if len(e.cum) == 0 {
		return 0
	}

	return e.cum[len(e.cum)-1]
}

// before returns the energy of the first n samples.
func (e energy) before(n int) float64 {
	if n <= 0 {
		return 0
	}

	return e.cum[min(n, len(e.cum))-1]
}

func (e energy) schroeder() []float64 {
	total := e.total()
	out := make([]float64, len(e.cum))

	if total <= 0 {
		return out
	}

	for i := range out {
		remaining := total - e.before(i)
		if remaining <= 0 {
			out[i] = -200
			continue
		}

		out[i] = max(10*math.Log10(remaining/total), -200)
	}

	return out
}

func (e energy) definition(boundary int) float64 {
	total := e.total()
	if boundary <= 0 || total <= 0 {
		return 0
	}

	if boundary >= len(e.cum) {
		return 1
	}

	return e.before(boundary) / total
}

func (e energy) clarity(boundary int) float64 {
	if boundary <= 0 {
		return math.Inf(-1)
	}

	if boundary >= len(e.cum) {
		return math.Inf(1)
	}

	early := e.before(boundary)
	late := e.total() - early

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(early/late)
}

// centroid returns the energy-weighted mean sample index.
func (e energy) centroid() float64 {
	total := e.total()
	if total <= 0 {
		return 0
	}

	var weighted float64
	for i, v := range e.squared {
		weighted += float64(i) * v
	}

	return weighted / total
}

func round1(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}

	return math.Round(v*10) / 10
}
