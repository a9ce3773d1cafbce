// Command onebit-render plays a note script through the synthesizer
// offline and writes the result to a WAV file.
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"hash"
	"os"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/pkg/audio"
	"github.com/thelolagemann/onebit/pkg/control"
	"github.com/thelolagemann/onebit/pkg/display/scope"
	"github.com/thelolagemann/onebit/pkg/log"
	"github.com/thelolagemann/onebit/pkg/utils"
	"gonum.org/v1/plot/vg"
)

func main() {
	scriptFile := flag.String("script", "", "The note script to play")
	presetFile := flag.String("preset", "", "The preset file to load")
	output := flag.String("o", "out.wav", "The WAV file to write")
	plotFile := flag.String("plot", "", "Also plot the start of the render to this PNG file")
	plotSamples := flag.Int("plot-samples", 1024, "The number of samples to plot")
	rate := flag.Int("rate", 44100, "The sample rate")
	tail := flag.Duration("tail", time.Second, "How long to keep rendering after the last step")
	poly := flag.Bool("poly", false, "Use the TIA poly bank instead of the pattern table")
	debug := flag.Bool("debug", false, "Print debug messages")
	flag.Parse()

	logger := log.New(*debug)
	if err := run(logger, options{
		script:      *scriptFile,
		preset:      *presetFile,
		output:      *output,
		plot:        *plotFile,
		plotSamples: *plotSamples,
		rate:        *rate,
		tail:        *tail,
		poly:        *poly,
	}); err != nil {
		logger.Fatal(err.Error())
	}
}

type options struct {
	script, preset, output, plot string
	plotSamples, rate            int
	tail                         time.Duration
	poly                         bool
}

func run(logger log.Logger, o options) error {
	var steps []Step
	if o.script != "" {
		b, err := utils.LoadFile(o.script)
		if err != nil {
			return err
		}
		if steps, err = ParseScript(bytes.NewReader(b)); err != nil {
			return fmt.Errorf("%s: %w", o.script, err)
		}
	}

	opts := []synth.Opt{synth.WithSampleRate(o.rate), synth.WithLogger(logger)}
	if o.poly {
		opts = append(opts, synth.WithPolyBank())
	}
	s, err := synth.New(opts...)
	if err != nil {
		return err
	}
	if o.preset != "" {
		resp := s.SendCommand(control.CommandPacket{Command: control.CommandLoadPreset, Data: []byte(o.preset)})
		if resp.Error != nil {
			return resp.Error
		}
	}

	r := newRenderer(s, steps, o.plotSamples)
	length := o.tail
	if len(steps) > 0 {
		length += steps[len(steps)-1].At
	}
	n := r.sampleAt(length)
	if err := audio.WriteWAVFile(o.output, r, n); err != nil {
		return err
	}
	logger.Infof("wrote %d samples to %s (xxhash %016x)", n, o.output, r.Sum64())

	if o.plot != "" {
		f, err := os.Create(o.plot)
		if err != nil {
			return err
		}
		defer f.Close()
		trace := scope.Samples(o.output, r.captured)
		if err := trace.WritePNG(f, 8*vg.Inch, 3*vg.Inch); err != nil {
			return err
		}
		logger.Infof("plotted %d samples to %s", len(r.captured), o.plot)
	}
	return nil
}

// renderer is an audio.Source that applies the steps of a script as
// the render reaches their time. It hashes everything it renders and
// keeps the first samples for plotting.
type renderer struct {
	s        *synth.Synth
	steps    []Step
	next     int
	rendered int

	hash     hash.Hash64
	captured []int16
	capture  int
}

func newRenderer(s *synth.Synth, steps []Step, capture int) *renderer {
	return &renderer{s: s, steps: steps, hash: xxhash.New(), capture: capture}
}

func (r *renderer) sampleAt(d time.Duration) int {
	return int(d * time.Duration(r.s.SampleRate()) / time.Second)
}

func (r *renderer) SampleRate() int {
	return r.s.SampleRate()
}

// Samples renders up to len(out) samples, stopping short at the next
// step so that it is applied on the right sample.
func (r *renderer) Samples(out []int16) int {
	for r.next < len(r.steps) && r.sampleAt(r.steps[r.next].At) <= r.rendered {
		r.steps[r.next].Apply(r.s)
		r.next++
	}
	n := len(out)
	if r.next < len(r.steps) {
		n = min(n, r.sampleAt(r.steps[r.next].At)-r.rendered)
	}

	got := r.s.Samples(out[:n])
	r.rendered += got

	var b [2]byte
	for _, v := range out[:got] {
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		r.hash.Write(b[:])
	}
	if keep := r.capture - len(r.captured); keep > 0 {
		r.captured = append(r.captured, out[:min(keep, got)]...)
	}
	return got
}

// Sum64 returns the hash of the samples rendered so far.
func (r *renderer) Sum64() uint64 {
	return r.hash.Sum64()
}
