package absorption

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/cwbudde/algo-alpha/internal/testutil"
	"github.com/cwbudde/algo-alpha/measure/extract"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

const (
	reflectionDelay = 44
	reflectionGain  = 0.5
	latency         = 100
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// reflect models a material with a single reflection: x + g*x[n-d].
func reflect(x []float64) []float64 {
	out := testutil.Delay(x, reflectionDelay)
	for i, v := range x {
		out[i] = v + reflectionGain*out[i]
	}

	return out
}

func requireAlpha(t *testing.T, res *Result, want, tol float64) {
	t.Helper()

	for k, a := range res.Alpha() {
		if math.Abs(a-want) > tol {
			t.Fatalf("bin %d: alpha = %v, want %v", k, a, want)
		}
	}
}

func TestAnalyzeSingleReflection(t *testing.T) {
	ms := mustMeasurement(t, sweepSettings())

	sweep, err := Synthesize(ms)
	if err != nil {
		t.Fatal(err)
	}

	if len(sweep) != 4410 {
		t.Fatalf("sweep length %d", len(sweep))
	}

	gen := append(sweep, make([]float64, 100)...)
	rec := Recording{Microphone: reflect(gen), Generator: gen}

	ms = ms.WithLocations(extract.Locations{})

	res, err := NewAnalyzer(quietLogger()).Analyze(ms, mustAnalysis(t, analysisSettings()), rec)
	if err != nil {
		t.Fatal(err)
	}

	if res.SampleRate() != 44100 || len(res.Alpha()) != 8192 {
		t.Fatalf("rate %v, bins %d", res.SampleRate(), len(res.Alpha()))
	}

	requireAlpha(t, res, 0.75, 1e-6)

	ir := res.ImpulseResponse()
	if len(ir) != 44 || math.Abs(ir[reflectionDelay-22]-reflectionGain) > 1e-8 {
		t.Fatalf("impulse response peak %v", ir[reflectionDelay-22])
	}

	for _, b := range res.Bands() {
		if math.Abs(b.Alpha-0.75) > 1e-6 {
			t.Fatalf("band %v Hz: alpha %v", b.Center, b.Alpha)
		}
	}

	if n := len(res.Bands()); n != len(ThirdOctaveCenters) {
		t.Fatalf("bands = %d", n)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	ms := mustMeasurement(t, sweepSettings()).WithLocations(extract.Locations{})
	as := mustAnalysis(t, analysisSettings())
	a := NewAnalyzer(quietLogger())

	_, err := a.Analyze(ms, as, Recording{Microphone: make([]float64, 10), Generator: make([]float64, 9)})
	if !errors.Is(err, measerr.ErrDataShape) {
		t.Fatalf("unequal channels: err = %v", err)
	}

	m := analysisSettings()
	m[KeyFFTSize] = "1000"

	_, err = a.Analyze(ms, mustAnalysis(t, m), Recording{Microphone: make([]float64, 10), Generator: make([]float64, 10)})
	if !errors.Is(err, measerr.ErrConfiguration) {
		t.Fatalf("fft size: err = %v", err)
	}

	unlocated := mustMeasurement(t, sweepSettings())

	_, err = a.Analyze(unlocated, as, Recording{Microphone: make([]float64, 64), Generator: make([]float64, 64)})
	if !errors.Is(err, measerr.ErrSynchronization) || !errors.Is(err, ErrImpulseNotFound) {
		t.Fatalf("silence: err = %v", err)
	}
}

func TestLocateRejectsUnevenRecording(t *testing.T) {
	m := sweepSettings()
	m[KeySignalReps] = "2"

	_, err := Locate(mustMeasurement(t, m), Recording{Microphone: make([]float64, 10), Generator: make([]float64, 10)})
	if !errors.Is(err, extract.ErrReshape) || !errors.Is(err, measerr.ErrDataShape) {
		t.Fatalf("err = %v", err)
	}
}

// tube plays the signal through a loopback with latency and a single
// reflection on the microphone side.
type tube struct {
	err    error
	silent bool
	short  bool
}

func (tb tube) PlaybackAndRecord(_ context.Context, signal []float64) ([]float64, []float64, error) {
	if tb.err != nil {
		return nil, nil, tb.err
	}

	gen := testutil.Delay(signal, latency)
	if tb.silent {
		gen = make([]float64, len(signal))
	}

	mic := reflect(gen)
	if tb.short {
		mic = mic[:len(mic)-1]
	}

	return mic, gen, nil
}

func paddedSettings() map[string]string {
	m := sweepSettings()
	m[KeyPadSignal] = "true"
	m[KeyImpulseDelay] = "0.01"
	m[KeySignalPadding] = "0.01"
	m[KeySignalReps] = "1"

	return m
}

func TestSessionMeasureAndAnalyze(t *testing.T) {
	ms := mustMeasurement(t, paddedSettings())

	meas, err := NewSession(tube{}, quietLogger()).Measure(context.Background(), ms)
	if err != nil {
		t.Fatal(err)
	}

	loc, ok := meas.Settings.Locations()
	if !ok || loc.Microphone != latency || loc.Generator != latency {
		t.Fatalf("locations = %+v", loc)
	}

	if len(meas.Recording.Microphone) != ms.Excitation().Samples() {
		t.Fatalf("recording length %d", len(meas.Recording.Microphone))
	}

	res, err := NewAnalyzer(quietLogger()).Analyze(meas.Settings, mustAnalysis(t, analysisSettings()), meas.Recording)
	if err != nil {
		t.Fatal(err)
	}

	if res.Locations != loc {
		t.Fatalf("result locations %+v", res.Locations)
	}

	requireAlpha(t, res, 0.75, 1e-6)

	// Locating again from the raw recording gives the same answer.
	again, err := NewAnalyzer(quietLogger()).Analyze(ms, mustAnalysis(t, analysisSettings()), meas.Recording)
	if err != nil {
		t.Fatal(err)
	}

	if again.Locations != loc {
		t.Fatalf("relocated %+v", again.Locations)
	}
}

func TestSessionMeasureErrors(t *testing.T) {
	ms := mustMeasurement(t, paddedSettings())
	ctx := context.Background()

	_, err := NewSession(tube{err: errors.New("no such device")}, quietLogger()).Measure(ctx, ms)
	if !errors.Is(err, measerr.ErrDevice) || !errors.Is(err, ErrTransport) {
		t.Fatalf("transport: err = %v", err)
	}

	_, err = NewSession(tube{short: true}, quietLogger()).Measure(ctx, ms)
	if !errors.Is(err, measerr.ErrDataShape) {
		t.Fatalf("unequal channels: err = %v", err)
	}

	_, err = NewSession(tube{silent: true}, quietLogger()).Measure(ctx, ms)
	if !errors.Is(err, measerr.ErrSynchronization) {
		t.Fatalf("silent generator: err = %v", err)
	}

	m := paddedSettings()
	delete(m, KeySignalType)

	_, err = NewSession(tube{}, quietLogger()).Measure(ctx, mustMeasurement(t, m))
	if !errors.Is(err, ErrMissingSetting) {
		t.Fatalf("missing type: err = %v", err)
	}
}

func TestAnalyzeRejectsFFTShorterThanResponse(t *testing.T) {
	ms := mustMeasurement(t, sweepSettings())
	rec := Recording{Microphone: make([]float64, 4410), Generator: make([]float64, 4410)}
	a := NewAnalyzer(quietLogger())

	m := analysisSettings()
	m[KeyFFTSize] = "4096"

	_, err := a.Analyze(ms, mustAnalysis(t, m), rec)
	if !errors.Is(err, measerr.ErrConfiguration) || !errors.Is(err, ErrFFTTooShort) {
		t.Fatalf("err = %v, want ErrFFTTooShort", err)
	}

	// Persisted locations shorten the response that has to fit.
	_, err = a.Analyze(ms.WithLocations(extract.Locations{Microphone: 400, Generator: 314}), mustAnalysis(t, m), rec)
	if errors.Is(err, ErrFFTTooShort) {
		t.Fatalf("located response rejected: %v", err)
	}

	// Decimation by two halves it.
	m[KeyDecimationFactor] = "2"
	m[KeyFilterOrder] = "8"

	_, err = a.Analyze(ms, mustAnalysis(t, m), rec)
	if errors.Is(err, ErrFFTTooShort) || !errors.Is(err, measerr.ErrSynchronization) {
		t.Fatalf("decimated: err = %v, want a synchronization error on silence", err)
	}
}
