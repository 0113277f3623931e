package speech

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var ErrNotWAV = errors.New("not a valid wav file")

// PCM is mono integer audio as returned by an Engine.
type PCM struct {
	Samples    []int
	SampleRate int
	BitDepth   int
}

func (p PCM) Empty() bool {
	return len(p.Samples) == 0 || p.SampleRate <= 0
}

// DecodePCM16LE turns raw little-endian signed 16 bit bytes into samples.
func DecodePCM16LE(raw []byte) []int {
	out := make([]int, len(raw)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(raw[i*2:])))
	}
	return out
}

// DecodeWAV reads a wav stream and downmixes it to mono.
func DecodeWAV(r io.ReadSeeker) (PCM, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return PCM{}, ErrNotWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("decode wav: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	samples := buf.Data
	if channels > 1 {
		mono := make([]int, len(samples)/channels)
		for i := range mono {
			sum := 0
			for c := 0; c < channels; c++ {
				sum += samples[i*channels+c]
			}
			mono[i] = sum / channels
		}
		samples = mono
	}
	return PCM{Samples: samples, SampleRate: int(dec.SampleRate), BitDepth: int(dec.BitDepth)}, nil
}

func ReadWAVFile(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, err
	}
	defer f.Close()
	return DecodeWAV(f)
}

// to16Bit rescales samples from another bit depth so everything we write is s16.
// 8 bit WAV is unsigned and centred on 128.
func to16Bit(p PCM) []int {
	depth := p.BitDepth
	if depth == 0 || depth == config.SpeechBitDepth {
		return p.Samples
	}
	out := make([]int, len(p.Samples))
	for i, s := range p.Samples {
		if depth == 8 {
			s -= 128
		}
		if depth > config.SpeechBitDepth {
			out[i] = s >> (depth - config.SpeechBitDepth)
		} else {
			out[i] = s << (config.SpeechBitDepth - depth)
		}
	}
	return out
}

// WriteWAV encodes 16 bit mono PCM to path. A partial file is removed on failure.
func WriteWAV(path string, p PCM) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	enc := wav.NewEncoder(f, p.SampleRate, config.SpeechBitDepth, config.SpeechChannels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: config.SpeechChannels, SampleRate: p.SampleRate},
		Data:           to16Bit(p),
		SourceBitDepth: config.SpeechBitDepth,
	}
	if err = enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode wav: %w", err)
	}
	if err = enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}
