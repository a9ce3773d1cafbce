package audio

import (
	"fmt"
	"io"

	"github.com/arl/blip/wave"
)

// wavChunk is the number of samples handed to the wave writer per
// call; it accepts at most 2048.
const wavChunk = 512

// WriteWAV renders n samples of src into a WAV stream written to w.
func WriteWAV(w io.Writer, src Source, n int) error {
	ww := wave.NewWriter(w, src.SampleRate())
	if err := copySamples(ww, src, n); err != nil {
		return err
	}
	if err := ww.Close(); err != nil {
		return fmt.Errorf("audio: finalizing wav: %w", err)
	}
	return nil
}

// WriteWAVFile renders n samples of src into the WAV file at path.
func WriteWAVFile(path string, src Source, n int) error {
	ww, err := wave.NewFile(path, src.SampleRate())
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := copySamples(ww, src, n); err != nil {
		ww.Close()
		return err
	}
	if err := ww.Close(); err != nil {
		return fmt.Errorf("audio: finalizing %s: %w", path, err)
	}
	return nil
}

func copySamples(ww *wave.Writer, src Source, n int) error {
	var buf [wavChunk]int16
	for n > 0 {
		chunk := buf[:min(n, wavChunk)]
		got := src.Samples(chunk)
		if got == 0 {
			return fmt.Errorf("audio: source ran dry with %d samples left", n)
		}
		if _, err := ww.Write(chunk[:got]); err != nil {
			return fmt.Errorf("audio: writing wav: %w", err)
		}
		n -= got
	}
	return nil
}
