package speech_extraction

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"grocery-voice-ledger/ring_buffer"
	"grocery-voice-ledger/speech_extraction/vad"
	"grocery-voice-ledger/speech_to_text"

	"github.com/go-audio/audio"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/afero"
	"github.com/zenwerk/go-wave"
)

const (
	sampleRate = 16000
	bufferSize = 8196

	defaultQuietTime     = time.Millisecond * 200
	defaultListenTimeout = time.Second * 8
	defaultPhraseLimit   = time.Second * 10
)

type voiceImpl struct {
	fileSys       afero.Fs
	sttEngine     speech_to_text.Interface
	quietTime     time.Duration
	listenTimeout time.Duration
	phraseLimit   time.Duration
	dumpDir       string
	logger        *slog.Logger

	mu           sync.Mutex
	audioRunning bool
}

type Config struct {
	// FileSys receives utterance dumps when DumpDir is set.
	FileSys   afero.Fs
	STTEngine speech_to_text.Interface
	// QuietTime of silence that ends an utterance.
	QuietTime time.Duration
	// ListenTimeout without any speech before Listen gives up.
	ListenTimeout time.Duration
	// PhraseLimit caps the length of one utterance.
	PhraseLimit time.Duration
	DumpDir     string
	Logger      *slog.Logger
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.FileSys == nil {
		return nil, fmt.Errorf("fileSys is nil")
	}

	if cfg.STTEngine == nil {
		return nil, fmt.Errorf("sttEngine is nil")
	}

	v := &voiceImpl{
		fileSys:       cfg.FileSys,
		sttEngine:     cfg.STTEngine,
		quietTime:     cfg.QuietTime,
		listenTimeout: cfg.ListenTimeout,
		phraseLimit:   cfg.PhraseLimit,
		dumpDir:       cfg.DumpDir,
		logger:        cfg.Logger,
	}

	if v.quietTime <= 0 {
		v.quietTime = defaultQuietTime
	}

	if v.listenTimeout <= 0 {
		v.listenTimeout = defaultListenTimeout
	}

	if v.phraseLimit <= 0 {
		v.phraseLimit = defaultPhraseLimit
	}

	if v.logger == nil {
		v.logger = slog.Default()
	}

	return v, nil
}

func (v *voiceImpl) Listen(ctx context.Context) (string, error) {
	err := v.initAudio()
	if err != nil {
		return "", err
	}

	samples, err := v.listenIntoBuffer(ctx)
	if err != nil {
		return "", err
	}

	if len(samples) == 0 {
		return "", nil
	}

	if v.dumpDir != "" {
		if err := v.dump(samples); err != nil {
			v.logger.Warn("Could not save utterance", slog.String("error", err.Error()))
		}
	}

	segments, err := v.sttEngine.Process(intBuffer(samples))
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	for _, segment := range segments {
		v.logger.Debug("Transcribed",
			slog.Duration("start", segment.Start.Truncate(time.Millisecond)),
			slog.Duration("end", segment.End.Truncate(time.Millisecond)),
			slog.String("text", segment.Text))
	}

	return speech_to_text.Text(segments), nil
}

func (v *voiceImpl) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.audioRunning {
		return nil
	}

	v.audioRunning = false

	return portaudio.Terminate()
}

func (v *voiceImpl) initAudio() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.audioRunning {
		err := portaudio.Initialize()
		if err != nil {
			return err
		}

		v.audioRunning = true
	}

	return nil
}

// listenIntoBuffer records from the default input until the gate reports
// the end of speech, the phrase limit is hit, or nothing is heard within
// the listen timeout. Audio from just before the onset is kept.
func (v *voiceImpl) listenIntoBuffer(ctx context.Context) ([]int16, error) {
	in := make([]int16, bufferSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, len(in), in)
	if err != nil {
		return nil, err
	}

	defer stream.Close()

	err = stream.Start()
	if err != nil {
		return nil, err
	}

	defer stream.Stop()

	detector := vad.New(len(in))
	gate := vad.NewGate(v.quietTime)
	ringBuffer := ring_buffer.New(bufferSize)

	var (
		recorded    []int16
		listenStart = time.Now()
		speechStart time.Time
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err = stream.Read()
		if err != nil {
			return nil, err
		}

		now := time.Now()

		switch gate.Observe(detector.Flux(in), now) {
		case vad.Waiting:
			// keep a buffer of the first bit of audio before detection
			ringBuffer.Add(in)

			if now.Sub(listenStart) > v.listenTimeout {
				v.logger.Debug("Listen timed out")

				return nil, nil
			}
		case vad.Started:
			speechStart = now
			recorded = append(recorded, ringBuffer.Read()...)
			recorded = append(recorded, in...)
		case vad.Speaking:
			recorded = append(recorded, in...)

			if now.Sub(speechStart) > v.phraseLimit {
				v.logger.Debug("Phrase limit reached")

				return recorded, nil
			}
		case vad.Ended:
			recorded = append(recorded, in...)

			return recorded, nil
		}
	}
}

// dump writes the utterance as a 16-bit mono wav file.
func (v *voiceImpl) dump(samples []int16) error {
	err := v.fileSys.MkdirAll(v.dumpDir, 0o755)
	if err != nil {
		return err
	}

	waveFilename := filepath.Join(v.dumpDir,
		fmt.Sprintf("utterance-%d.wav", time.Now().UnixNano()))

	waveFile, err := v.fileSys.Create(waveFilename)
	if err != nil {
		return err
	}

	param := wave.WriterParam{
		Out:           waveFile,
		Channel:       1,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
	}

	waveWriter, err := wave.NewWriter(param)
	if err != nil {
		waveFile.Close()

		return err
	}

	_, err = waveWriter.WriteSample16(samples)
	if err != nil {
		waveWriter.Close()

		return err
	}

	v.logger.Debug("Saved utterance", slog.String("path", waveFilename))

	return waveWriter.Close()
}

func intBuffer(samples []int16) *audio.IntBuffer {
	data := make([]int, len(samples))
	for i, sample := range samples {
		data[i] = int(sample)
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
}
