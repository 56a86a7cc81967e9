package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/incident-heatmap-go/internal/database"
	"github.com/jengzang/incident-heatmap-go/internal/models"
)

// IncidentRepository handles database operations for incident points
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// InsertBatch stores incidents in a single transaction and returns the number inserted
func (r *IncidentRepository) InsertBatch(ctx context.Context, points []models.IncidentPoint, source string) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO incidents (lat, lng, weight, source) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, p := range points {
			if _, err := stmt.ExecContext(ctx, p.Lat, p.Lng, p.Weight, source); err != nil {
				return fmt.Errorf("failed to insert incident: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(points), nil
}

// FindInBounds returns incidents inside the closed bounding box ordered by id.
// limit <= 0 returns every matching row.
func (r *IncidentRepository) FindInBounds(ctx context.Context, b models.BoundingBox, limit int) ([]models.IncidentPoint, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `SELECT lat, lng, weight FROM incidents
		WHERE lat >= ? AND lat <= ? AND lng >= ? AND lng <= ?
		ORDER BY id
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, b.South, b.North, b.West, b.East, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	points := make([]models.IncidentPoint, 0)
	for rows.Next() {
		var p models.IncidentPoint
		if err := rows.Scan(&p.Lat, &p.Lng, &p.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incidents: %w", err)
	}

	return points, nil
}

// Count returns the total number of stored incidents
func (r *IncidentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM incidents").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}
	return n, nil
}
