package service

import (
	"context"
	"math/rand/v2"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
)

// fallbackPool holds pre-written inspection narratives handed out when no
// speech backend is configured or the backend call fails. Selection is
// uniform per call; the pool size is a constant of this build, not a
// contract.
var fallbackPool = []string{
	"Routine inspection completed, no anomalies observed at the site.",
	"Minor corrosion detected on the north-facing pipe joints, follow-up recommended.",
	"Drainage channel partially obstructed by debris, maintenance crew notified.",
	"Safety signage at the access gate is faded and should be replaced.",
	"Pressure readings within nominal range across all monitored valves.",
	"Vegetation overgrowth encroaching on the perimeter fence line.",
	"Small oil stain observed near the pump housing, source not identified.",
	"Concrete foundation shows hairline cracking on the east support column.",
	"All emergency lighting operational during this inspection round.",
	"Ambient noise levels elevated near the compressor unit, readings logged.",
}

// Transcription converts voice notes to text, degrading to the canned pool
// when the real engine is absent or failing. It never returns an error: a
// transcription request always resolves to some string.
type Transcription struct {
	backend model.SpeechBackend // nil when no speech backend is configured
	logger  *logger.Logger
	intn    func(n int) int // injectable random source for pool selection
}

func NewTranscription(backend model.SpeechBackend, logger *logger.Logger) *Transcription {
	return &Transcription{
		backend: backend,
		logger:  logger,
		intn:    rand.IntN,
	}
}

// Transcribe resolves audio to text. The second return reports whether the
// real engine produced the text; false means it came from the fallback pool.
// Passing an empty buffer skips the engine and draws from the pool directly.
func (t *Transcription) Transcribe(ctx context.Context, audio []byte, contentType string) (string, bool) {
	if t.backend != nil && len(audio) > 0 {
		text, err := t.backend.Transcribe(ctx, audio, contentType)
		if err == nil && text != "" {
			return text, true
		}
		if err != nil {
			t.logger.Warn("Transcription service: backend failed, using fallback pool",
				"error", err.Error())
		}
	}

	return fallbackPool[t.intn(len(fallbackPool))], false
}
