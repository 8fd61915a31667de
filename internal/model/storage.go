package model

import (
	"context"
	"io"
)

// Storage is the durable object backend behind the uploader.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

// SpeechBackend converts a voice-note buffer to text.
type SpeechBackend interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}
