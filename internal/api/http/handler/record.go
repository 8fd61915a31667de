package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
	"github.com/fieldscope/field-inspector/internal/service"
)

const defaultPageSize = 50

// IngestService runs the report ingestion pipeline.
type IngestService interface {
	Ingest(ctx context.Context, params service.IngestParams) (service.IngestResult, error)
}

// RecordService queries and mutates persisted records.
type RecordService interface {
	List(ctx context.Context, params model.ListRecordsParams) ([]model.InspectionRecord, int, error)
	Get(ctx context.Context, id, userID string) (model.InspectionRecord, error)
	Update(ctx context.Context, id, userID string, params model.UpdateRecordParams) (model.InspectionRecord, error)
	Delete(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (model.RecordStats, error)
}

// Record exposes the inspection record endpoints.
type Record struct {
	ingest         IngestService
	records        RecordService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRecord creates a new Record handler instance.
func NewRecord(
	ingest IngestService,
	records RecordService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Record {
	return &Record{
		ingest:         ingest,
		records:        records,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createRecordRequest struct {
	Location      string          `json:"location"`
	Notes         string          `json:"notes"`
	Coordinates   json.RawMessage `json:"coordinates"`
	Transcription string          `json:"transcription"`
}

type updateRecordRequest struct {
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// Create handles POST /api/records. The body is multipart/form-data with
// optional photo and audio file parts, or plain JSON when no files are sent.
func (h *Record) Create(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	params, err := h.parseCreateRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
		return
	}
	params.UserID = userID

	result, err := h.ingest.Ingest(c.Request.Context(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success:  true,
		Message:  "record created",
		Record:   &result.Record,
		Features: &result.Features,
	})
}

func (h *Record) parseCreateRequest(c *gin.Context) (service.IngestParams, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req createRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.IngestParams{}, err
		}
		return service.IngestParams{
			Location:      req.Location,
			Notes:         req.Notes,
			Coordinates:   string(req.Coordinates),
			Transcription: req.Transcription,
		}, nil
	}

	params := service.IngestParams{
		Location:      c.PostForm("location"),
		Notes:         c.PostForm("notes"),
		Coordinates:   c.PostForm("coordinates"),
		Transcription: c.PostForm("transcription"),
	}

	photo, err := formAsset(c, "photo")
	if err != nil {
		return service.IngestParams{}, err
	}
	params.Photo = photo

	audio, err := formAsset(c, "audio")
	if err != nil {
		return service.IngestParams{}, err
	}
	params.Audio = audio

	return params, nil
}

func formAsset(c *gin.Context, field string) (*model.Asset, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &model.Asset{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// List handles GET /api/records with optional page, limit, location,
// dateFrom and dateTo query parameters.
func (h *Record) List(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	params := model.ListRecordsParams{
		UserID:   userID,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", defaultPageSize),
		Location: c.Query("location"),
	}
	params.DateFrom = queryTime(c, "dateFrom")
	params.DateTo = queryTime(c, "dateTo")

	records, total, err := h.records.List(c.Request.Context(), params)
	if err != nil {
		handleError(c, err)
		return
	}

	if records == nil {
		records = []model.InspectionRecord{}
	}

	c.JSON(http.StatusOK, listResponse{
		Success: true,
		Records: records,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.PageSize,
			Total: total,
		},
	})
}

// Get handles GET /api/records/:id.
func (h *Record) Get(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	record, err := h.records.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Record: &record})
}

// Update handles PUT /api/records/:id. Only location and notes are mutable.
func (h *Record) Update(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
		return
	}

	record, err := h.records.Update(c.Request.Context(), c.Param("id"), userID, model.UpdateRecordParams{
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "record updated",
		Record:  &record,
	})
}

// Delete handles DELETE /api/records/:id.
func (h *Record) Delete(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	if err := h.records.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Message: "record deleted"})
}

// Stats handles GET /api/stats.
func (h *Record) Stats(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrMissingToken)
		return
	}

	stats, err := h.records.Stats(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Stats: &stats})
}

// Health handles GET /health.
func (h *Record) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "Field Inspector API",
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func queryTime(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Date-only filters are accepted too.
		value, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil
		}
	}
	return &value
}
