package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/fieldscope/field-inspector/internal/model"
)

var _ model.RecordStore = (*RecordStore)(nil)

// RecordStore keeps inspection records in a mutex-guarded map with a
// monotonic integer id counter. It honors only the user-id filter; sort and
// pagination happen client-side over the owner's records.
type RecordStore struct {
	mu      sync.RWMutex
	nextID  int
	records map[string]model.InspectionRecord
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		nextID:  1,
		records: make(map[string]model.InspectionRecord),
	}
}

func (s *RecordStore) Create(_ context.Context, record model.InspectionRecord) (model.InspectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = strconv.Itoa(s.nextID)
		s.nextID++
	}
	s.records[record.ID] = record

	return record, nil
}

func (s *RecordStore) List(_ context.Context, params model.ListRecordsParams) ([]model.InspectionRecord, int, error) {
	s.mu.RLock()
	owned := make([]model.InspectionRecord, 0)
	for _, r := range s.records {
		if r.UserID == params.UserID {
			owned = append(owned, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []model.InspectionRecord{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return owned[start:end], total, nil
}

func (s *RecordStore) Get(_ context.Context, id string, userID string) (model.InspectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok || record.UserID != userID {
		return model.InspectionRecord{}, model.ErrNotFound
	}
	return record, nil
}

func (s *RecordStore) Update(_ context.Context, id string, userID string, params model.UpdateRecordParams) (model.InspectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || record.UserID != userID {
		return model.InspectionRecord{}, model.ErrNotFound
	}

	if params.Location != nil {
		record.Location = *params.Location
	}
	if params.Notes != nil {
		record.Notes = *params.Notes
	}
	now := time.Now().UTC()
	record.UpdatedAt = &now

	s.records[id] = record
	return record, nil
}

func (s *RecordStore) Delete(_ context.Context, id string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || record.UserID != userID {
		return model.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *RecordStore) Stats(_ context.Context, userID string) (model.RecordStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	locations := make(map[string]struct{})

	var stats model.RecordStats
	for _, r := range s.records {
		if r.UserID != userID {
			continue
		}
		stats.TotalRecords++
		if !r.CreatedAt.Before(today) {
			stats.TodayRecords++
		}
		if r.Location != "" {
			locations[r.Location] = struct{}{}
		}
	}
	stats.UniqueLocations = len(locations)

	return stats, nil
}
