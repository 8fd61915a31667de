package model

import (
	"context"
	"encoding/json"
	"time"
)

// RecordStore defines persistence operations for inspection records.
type RecordStore interface {
	Create(ctx context.Context, record InspectionRecord) (InspectionRecord, error)
	List(ctx context.Context, params ListRecordsParams) ([]InspectionRecord, int, error)
	Get(ctx context.Context, id string, userID string) (InspectionRecord, error)
	Update(ctx context.Context, id string, userID string, params UpdateRecordParams) (InspectionRecord, error)
	Delete(ctx context.Context, id string, userID string) error
	Stats(ctx context.Context, userID string) (RecordStats, error)
}

// InspectionRecord is one persisted field-inspection report.
type InspectionRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Location      string          `json:"location,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PhotoURL      *string         `json:"photo_url"`
	Transcription *string         `json:"transcription"`
	Coordinates   json.RawMessage `json:"coordinates,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// ListRecordsParams narrows and paginates a per-user listing.
// Location matches as a case-insensitive substring; DateFrom/DateTo bound
// created_at inclusively. The fallback store honors only UserID, Page and
// PageSize.
type ListRecordsParams struct {
	UserID   string
	Page     int
	PageSize int
	Location string
	DateFrom *time.Time
	DateTo   *time.Time
}

// UpdateRecordParams carries the only mutable fields of a record.
// Nil pointers leave the stored value untouched.
type UpdateRecordParams struct {
	Location *string
	Notes    *string
}

// RecordStats summarizes a user's records.
type RecordStats struct {
	TotalRecords    int `json:"totalRecords"`
	TodayRecords    int `json:"todayRecords"`
	UniqueLocations int `json:"uniqueLocations"`
}

// Asset is an uploaded binary part of an ingestion request.
type Asset struct {
	Name        string
	ContentType string
	Data        []byte
}

// Features reports, per concern, whether the real backend or its fallback
// served one ingestion request.
type Features struct {
	RealTranscription bool `json:"realTranscription"`
	ExternalStorage   bool `json:"externalStorage"`
	PhotoUploaded     bool `json:"photoUploaded"`
}
