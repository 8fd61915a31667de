package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
)

// IngestParams carries one field report into the pipeline. Photo and Audio
// are optional attachments; Transcription holds manually typed text used
// only when no audio is attached.
type IngestParams struct {
	UserID        string
	Location      string
	Notes         string
	Coordinates   string
	Transcription string
	Photo         *model.Asset
	Audio         *model.Asset
}

// IngestResult pairs the persisted record with flags describing which
// external backends actually served the request.
type IngestResult struct {
	Record   model.InspectionRecord
	Features model.Features
}

// Ingest is the report ingestion pipeline: resolve the photo, resolve the
// transcription, persist the record. Stages run sequentially and every
// external failure degrades inside its stage, so a request that passes input
// validation always yields a stored record.
type Ingest struct {
	records     *Records
	uploader    *Upload
	transcriber *Transcription
	logger      *logger.Logger
}

func NewIngest(
	records *Records,
	uploader *Upload,
	transcriber *Transcription,
	logger *logger.Logger,
) *Ingest {
	return &Ingest{
		records:     records,
		uploader:    uploader,
		transcriber: transcriber,
		logger:      logger,
	}
}

// Ingest runs the pipeline for one report. The owner comes from the verified
// session, never from request payload. Coordinates are validated before any
// backend is touched.
func (s *Ingest) Ingest(ctx context.Context, params IngestParams) (IngestResult, error) {
	if params.UserID == "" {
		return IngestResult{}, model.ErrMissingOwner
	}

	coordinates, err := parseCoordinates(params.Coordinates)
	if err != nil {
		return IngestResult{}, err
	}

	record := model.InspectionRecord{
		UserID:      params.UserID,
		Location:    params.Location,
		Notes:       params.Notes,
		Coordinates: coordinates,
		CreatedAt:   time.Now().UTC(),
	}

	var features model.Features

	if params.Photo != nil {
		url, stored := s.uploader.Upload(ctx, *params.Photo, params.UserID)
		record.PhotoURL = &url
		features.PhotoUploaded = stored
	}

	text, real := s.resolveTranscription(ctx, params)
	record.Transcription = &text
	features.RealTranscription = real

	saved, external, err := s.records.Create(ctx, record)
	if err != nil {
		return IngestResult{}, fmt.Errorf("failed to ingest record: %w", err)
	}
	features.ExternalStorage = external

	s.logger.Info("Ingest service: record ingested",
		"record_id", saved.ID,
		"user_id", saved.UserID,
		"external_storage", external)

	return IngestResult{Record: saved, Features: features}, nil
}

// resolveTranscription picks the record's transcription text. Attached audio
// always wins over manually typed text; manual text passes through verbatim
// and counts as real; with neither, the fallback pool fills in.
func (s *Ingest) resolveTranscription(ctx context.Context, params IngestParams) (string, bool) {
	if params.Audio != nil {
		return s.transcriber.Transcribe(ctx, params.Audio.Data, params.Audio.ContentType)
	}
	if params.Transcription != "" {
		return params.Transcription, true
	}
	return s.transcriber.Transcribe(ctx, nil, "")
}

// parseCoordinates validates the raw coordinates payload. Empty input is
// allowed and stored as absent; anything else must be valid JSON and is
// stored as received.
func parseCoordinates(raw string) (json.RawMessage, error) {
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, model.ErrMalformedCoordinates
	}
	return json.RawMessage(raw), nil
}
