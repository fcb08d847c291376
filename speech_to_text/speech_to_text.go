package speech_to_text

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"
)

// sampleRate is the only rate the whisper models accept.
const sampleRate = 16000

type sttImpl struct {
	model    whisper.Model
	language string
	logger   *slog.Logger
}

type Config struct {
	Model whisper.Model
	// Language hint such as "en" or "hi". Empty lets whisper detect it.
	Language string
	Logger   *slog.Logger
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Model == nil {
		return nil, fmt.Errorf("model is nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &sttImpl{
		model:    cfg.Model,
		language: cfg.Language,
		logger:   logger,
	}, nil
}

func (stt *sttImpl) Process(wavBuffer audio.Buffer) ([]Segment, error) {
	if wavBuffer == nil || wavBuffer.NumFrames() == 0 {
		return nil, nil
	}

	context, err := stt.model.NewContext()
	if err != nil {
		return nil, err
	}

	if stt.language != "" {
		if err := context.SetLanguage(stt.language); err != nil {
			return nil, fmt.Errorf("set language %q: %w", stt.language, err)
		}
	}

	var cb whisper.SegmentCallback

	err = context.Process(samples(wavBuffer), cb)
	if err != nil {
		return nil, err
	}

	segments, err := stt.collectSegments(context)
	if err != nil {
		return nil, err
	}

	return filterSegments(segments), nil
}

func (stt *sttImpl) ProcessFile(fileSys afero.Fs, path string) ([]Segment, error) {
	file, err := fileSys.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}

	if decoder.SampleRate != sampleRate || decoder.NumChans != 1 {
		return nil, fmt.Errorf("%s: need 16 kHz mono, got %d Hz with %d channels",
			path, decoder.SampleRate, decoder.NumChans)
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return stt.Process(buffer)
}

func (stt *sttImpl) collectSegments(context whisper.Context) ([]Segment, error) {
	segments := make([]Segment, 0)

	for {
		segment, err := context.NextSegment()
		if err == io.EOF {
			return segments, nil
		} else if err != nil {
			return nil, err
		}

		stt.logger.Debug("segment",
			"start", segment.Start, "end", segment.End, "text", segment.Text)

		segments = append(segments, Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
}

// samples scales integer PCM to the [-1, 1] range whisper expects.
func samples(wavBuffer audio.Buffer) []float32 {
	intBuffer, ok := wavBuffer.(*audio.IntBuffer)
	if !ok {
		return wavBuffer.AsFloat32Buffer().Data
	}

	bitDepth := intBuffer.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	scale := float32(math.Pow(2, float64(bitDepth-1)))
	data := make([]float32, len(intBuffer.Data))

	for i, sample := range intBuffer.Data {
		data[i] = float32(sample) / scale
	}

	return data
}
