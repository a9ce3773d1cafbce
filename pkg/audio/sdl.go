//go:build !test

package audio

// typedef unsigned char Uint8;
// void AudioData(void *userdata, Uint8 *stream, int len);
import "C"
import (
	"sync/atomic"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

const sdlBufferSize = 1024

// the callback has no way to carry a Go pointer, so the source of the
// open device lives here
var sdlSource atomic.Value

type sourceBox struct{ Source }

//export AudioData
func AudioData(_ unsafe.Pointer, stream *C.Uint8, length C.int) {
	out := unsafe.Slice((*int16)(unsafe.Pointer(stream)), int(length)/2)
	box, _ := sdlSource.Load().(sourceBox)
	if box.Source == nil {
		clear(out)
		return
	}
	box.Samples(out)
}

type sdlPlayer struct {
	id sdl.AudioDeviceID
}

func init() {
	register("sdl", openSDL)
}

func openSDL(src Source) (Player, error) {
	if err := sdl.AudioInit("pulsewire"); err != nil {
		if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
			return nil, err
		}
	}

	sdlSource.Store(sourceBox{src})
	id, err := sdl.OpenAudioDevice("", false, &sdl.AudioSpec{
		Freq:     int32(src.SampleRate()),
		Format:   sdl.AUDIO_S16SYS,
		Channels: 1,
		Samples:  sdlBufferSize,
		Callback: sdl.AudioCallback(C.AudioData),
	}, nil, 0)
	if err != nil {
		return nil, err
	}
	return &sdlPlayer{id: id}, nil
}

func (p *sdlPlayer) Play() error {
	sdl.PauseAudioDevice(p.id, false)
	return nil
}

func (p *sdlPlayer) Close() error {
	sdl.PauseAudioDevice(p.id, true)
	sdl.CloseAudioDevice(p.id)
	sdlSource.Store(sourceBox{})
	return nil
}
