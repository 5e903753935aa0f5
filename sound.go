package tilekit

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Sound is fully decoded 16-bit stereo PCM ready to be played any number of
// times on its audio context.
type Sound struct {
	ctx     *audio.Context
	pcm     []byte
	players []*audio.Player
}

// SoundCache stores decoded sounds keyed by file name.
type SoundCache = ResourceCache[*Sound]

// NewSound wraps already decoded PCM data.
func NewSound(ctx *audio.Context, pcm []byte) *Sound {
	return &Sound{ctx: ctx, pcm: pcm}
}

// Len returns the PCM length in bytes.
func (s *Sound) Len() int {
	return len(s.pcm)
}

// Play starts a new player for the sound. Players that have finished are
// closed and recycled first.
func (s *Sound) Play() error {
	if s.ctx == nil {
		return ErrNoAudioContext
	}
	s.prune()
	p := s.ctx.NewPlayerFromBytes(s.pcm)
	p.Play()
	s.players = append(s.players, p)
	return nil
}

func (s *Sound) prune() {
	live := s.players[:0]
	for _, p := range s.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	s.players = live
}

// Close stops every player and drops the PCM data.
func (s *Sound) Close() {
	for _, p := range s.players {
		_ = p.Close()
	}
	s.players = nil
	s.pcm = nil
}

// SoundLoader decodes .wav, .mp3 and .ogg files at ctx's sample rate. With a
// nil ctx every load fails with ErrNoAudioContext.
func SoundLoader(ctx *audio.Context) Loader[*Sound] {
	return Loader[*Sound]{
		Load: func(fsys fs.FS, p string) (*Sound, error) {
			return loadSound(ctx, fsys, p)
		},
		Unload: func(s *Sound) {
			if s != nil {
				s.Close()
			}
		},
	}
}

// NewSoundCache creates an empty sound cache over fsys.
func NewSoundCache(fsys fs.FS, ctx *audio.Context) *SoundCache {
	return NewResourceCache("sound", fsys, SoundLoader(ctx))
}

func loadSound(ctx *audio.Context, fsys fs.FS, p string) (*Sound, error) {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".wav", ".mp3", ".ogg":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if ctx == nil {
		return nil, ErrNoAudioContext
	}

	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	src := bytes.NewReader(data)
	rate := ctx.SampleRate()

	var stream io.Reader
	switch ext {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(rate, src)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(rate, src)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(rate, src)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s stream: %w", ext, err)
	}
	return NewSound(ctx, pcm), nil
}
