package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
)

// Records persists and queries inspection records over two interchangeable
// backends. The database backend is preferred; its failures are absorbed by
// the in-process fallback within the same request. A record lives in exactly
// one store and is never copied between them, so reads consult the primary
// first and the fallback second.
type Records struct {
	primary  model.RecordStore // nil when the database backend is absent
	fallback model.RecordStore
	uploader *Upload
	logger   *logger.Logger
}

func NewRecords(
	primary model.RecordStore,
	fallback model.RecordStore,
	uploader *Upload,
	logger *logger.Logger,
) *Records {
	return &Records{
		primary:  primary,
		fallback: fallback,
		uploader: uploader,
		logger:   logger,
	}
}

// primaryFor returns the database backend when it can hold rows for this
// owner, nil otherwise. Fallback-registered users carry integer ids that
// never match the primary's UUID keys, so their records live only in the
// fallback store and the primary must not be consulted: it would answer
// with an empty success and mask them.
func (s *Records) primaryFor(userID string) model.RecordStore {
	if s.primary == nil || uuid.Validate(userID) != nil {
		return nil
	}
	return s.primary
}

// Create persists a record, reporting whether the database backend holds it.
// On a primary failure the record lands in the fallback store transparently;
// the external call is not retried.
func (s *Records) Create(ctx context.Context, record model.InspectionRecord) (model.InspectionRecord, bool, error) {
	if primary := s.primaryFor(record.UserID); primary != nil {
		saved, err := primary.Create(ctx, record)
		if err == nil {
			return saved, true, nil
		}
		s.logger.Error("Record service: record store unavailable, persisting to fallback",
			"user_id", record.UserID,
			"error", err.Error())
	}

	saved, err := s.fallback.Create(ctx, record)
	if err != nil {
		return model.InspectionRecord{}, false, fmt.Errorf("failed to create record: %w", err)
	}
	return saved, false, nil
}

// List returns one page of the user's records, newest first. Location and
// date filters apply only on the database backend; the fallback honors the
// owner filter with client-side sort and pagination.
func (s *Records) List(ctx context.Context, params model.ListRecordsParams) ([]model.InspectionRecord, int, error) {
	if primary := s.primaryFor(params.UserID); primary != nil {
		records, total, err := primary.List(ctx, params)
		if err == nil {
			return records, total, nil
		}
		s.logger.Error("Record service: record store unavailable, listing from fallback",
			"user_id", params.UserID,
			"error", err.Error())
	}

	return s.fallback.List(ctx, params)
}

func (s *Records) Get(ctx context.Context, id, userID string) (model.InspectionRecord, error) {
	if primary := s.primaryFor(userID); primary != nil {
		record, err := primary.Get(ctx, id, userID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Record service: record store unavailable, reading from fallback",
				"record_id", id,
				"error", err.Error())
		}
	}

	return s.fallback.Get(ctx, id, userID)
}

func (s *Records) Update(ctx context.Context, id, userID string, params model.UpdateRecordParams) (model.InspectionRecord, error) {
	if primary := s.primaryFor(userID); primary != nil {
		record, err := primary.Update(ctx, id, userID, params)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Record service: record store unavailable, updating on fallback",
				"record_id", id,
				"error", err.Error())
		}
	}

	return s.fallback.Update(ctx, id, userID, params)
}

// Delete removes a record. When the record carries a real photo URL, the
// photo object is deleted best-effort first; a photo-deletion failure never
// blocks removing the record.
func (s *Records) Delete(ctx context.Context, id, userID string) error {
	record, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	if record.PhotoURL != nil && *record.PhotoURL != "" {
		if err := s.uploader.DeletePhoto(ctx, *record.PhotoURL, userID); err != nil {
			s.logger.Warn("Record service: failed to delete photo, removing record anyway",
				"record_id", id,
				"error", err.Error())
		}
	}

	if primary := s.primaryFor(userID); primary != nil {
		err := primary.Delete(ctx, id, userID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Record service: record store unavailable, deleting on fallback",
				"record_id", id,
				"error", err.Error())
		}
	}

	return s.fallback.Delete(ctx, id, userID)
}

func (s *Records) Stats(ctx context.Context, userID string) (model.RecordStats, error) {
	if primary := s.primaryFor(userID); primary != nil {
		stats, err := primary.Stats(ctx, userID)
		if err == nil {
			return stats, nil
		}
		s.logger.Error("Record service: record store unavailable, computing stats from fallback",
			"user_id", userID,
			"error", err.Error())
	}

	return s.fallback.Stats(ctx, userID)
}
