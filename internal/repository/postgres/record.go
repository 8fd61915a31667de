package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fieldscope/field-inspector/internal/model"
)

var _ model.RecordStore = (*RecordRepository)(nil)

type RecordRepository struct {
	db *Connection
}

func NewRecordRepository(db *Connection) *RecordRepository {
	return &RecordRepository{
		db: db,
	}
}

const recordColumns = `id, user_id, COALESCE(location, ''), COALESCE(notes, ''),
		photo_url, transcription, coordinates, created_at, updated_at`

func scanRecord(row pgx.Row) (model.InspectionRecord, error) {
	var record model.InspectionRecord
	err := row.Scan(
		&record.ID, &record.UserID, &record.Location, &record.Notes,
		&record.PhotoURL, &record.Transcription, &record.Coordinates,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

// Create persists a record. The id is assigned here when the caller left it
// empty; created_at is taken from the record as-is.
func (r *RecordRepository) Create(ctx context.Context, record model.InspectionRecord) (model.InspectionRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO inspection_records (id, user_id, location, notes, photo_url, transcription, coordinates, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9)
		RETURNING ` + recordColumns

	savedRecord, err := scanRecord(r.db.QueryRow(ctx, query,
		record.ID, record.UserID, record.Location, record.Notes,
		record.PhotoURL, record.Transcription, record.Coordinates,
		record.CreatedAt, record.UpdatedAt,
	))
	if err != nil {
		return model.InspectionRecord{}, fmt.Errorf("failed to create record: %w", err)
	}

	return savedRecord, nil
}

func (r *RecordRepository) List(ctx context.Context, params model.ListRecordsParams) ([]model.InspectionRecord, int, error) {
	if uuid.Validate(params.UserID) != nil {
		return nil, 0, nil
	}

	where := []string{"user_id = $1"}
	args := []any{params.UserID}

	if params.Location != "" {
		args = append(args, "%"+params.Location+"%")
		where = append(where, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if params.DateFrom != nil {
		args = append(args, *params.DateFrom)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if params.DateTo != nil {
		args = append(args, *params.DateTo)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	condition := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT count(*) FROM inspection_records WHERE ` + condition
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM inspection_records WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, recordColumns, condition, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []model.InspectionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *RecordRepository) Get(ctx context.Context, id string, userID string) (model.InspectionRecord, error) {
	// Fallback-store ids are decimal integers; they can never name a row here.
	if uuid.Validate(id) != nil || uuid.Validate(userID) != nil {
		return model.InspectionRecord{}, model.ErrNotFound
	}

	query := `SELECT ` + recordColumns + ` FROM inspection_records WHERE id = $1 AND user_id = $2`

	record, err := scanRecord(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InspectionRecord{}, model.ErrNotFound
		}
		return model.InspectionRecord{}, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}

func (r *RecordRepository) Update(ctx context.Context, id string, userID string, params model.UpdateRecordParams) (model.InspectionRecord, error) {
	if uuid.Validate(id) != nil || uuid.Validate(userID) != nil {
		return model.InspectionRecord{}, model.ErrNotFound
	}

	sets := []string{"updated_at = now()"}
	args := []any{id, userID}

	if params.Location != nil {
		args = append(args, *params.Location)
		sets = append(sets, fmt.Sprintf("location = NULLIF($%d, '')", len(args)))
	}
	if params.Notes != nil {
		args = append(args, *params.Notes)
		sets = append(sets, fmt.Sprintf("notes = NULLIF($%d, '')", len(args)))
	}

	query := fmt.Sprintf(`UPDATE inspection_records SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING %s`, strings.Join(sets, ", "), recordColumns)

	record, err := scanRecord(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.InspectionRecord{}, model.ErrNotFound
		}
		return model.InspectionRecord{}, fmt.Errorf("failed to update record: %w", err)
	}

	return record, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string, userID string) error {
	if uuid.Validate(id) != nil || uuid.Validate(userID) != nil {
		return model.ErrNotFound
	}

	cmd, err := r.db.Exec(ctx, `DELETE FROM inspection_records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) Stats(ctx context.Context, userID string) (model.RecordStats, error) {
	if uuid.Validate(userID) != nil {
		return model.RecordStats{}, nil
	}

	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE created_at >= date_trunc('day', now())),
		       count(DISTINCT location) FILTER (WHERE location IS NOT NULL AND location <> '')
		FROM inspection_records
		WHERE user_id = $1`

	var stats model.RecordStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.TotalRecords, &stats.TodayRecords, &stats.UniqueLocations,
	)
	if err != nil {
		return model.RecordStats{}, fmt.Errorf("failed to get record stats: %w", err)
	}

	return stats, nil
}
