// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"calorie-coach/internal/metrics"
	"calorie-coach/internal/models"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS analyses (
        id TEXT PRIMARY KEY,
        created_at TEXT NOT NULL,
        sex TEXT NOT NULL,
        age_years INTEGER NOT NULL,
        height_cm INTEGER NOT NULL,
        weight_kg INTEGER NOT NULL,
        activity_level TEXT NOT NULL,
        external_kcal INTEGER NOT NULL,
        recommended_intake INTEGER NOT NULL,
        media_type TEXT NOT NULL,
        model TEXT NOT NULL,
        report TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	query := `
        INSERT INTO analyses (id, created_at, sex, age_years, height_cm, weight_kg, activity_level,
            external_kcal, recommended_intake, media_type, model, report)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	p := rec.Profile
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.CreatedAt.UTC().Format(timeLayout),
		string(p.Sex), p.AgeYears, p.HeightCm, p.WeightKg, string(p.ActivityLevel), p.ExternalKcal,
		rec.RecommendedIntake, rec.MediaType, rec.Model, rec.Report)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns the newest records first.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	query := `
        SELECT id, created_at, sex, age_years, height_cm, weight_kg, activity_level,
            external_kcal, recommended_intake, media_type, model, report
        FROM analyses
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	records := []*models.AnalysisRecord{}
	for rows.Next() {
		rec := &models.AnalysisRecord{}
		var createdAtStr, sexStr, levelStr string

		err := rows.Scan(
			&rec.ID, &createdAtStr, &sexStr, &rec.Profile.AgeYears, &rec.Profile.HeightCm,
			&rec.Profile.WeightKg, &levelStr, &rec.Profile.ExternalKcal, &rec.RecommendedIntake,
			&rec.MediaType, &rec.Model, &rec.Report)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		if rec.CreatedAt, err = time.Parse(timeLayout, createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		rec.Profile.Sex = metrics.Sex(sexStr)
		rec.Profile.ActivityLevel = metrics.ActivityLevel(levelStr)

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}

	return records, nil
}
