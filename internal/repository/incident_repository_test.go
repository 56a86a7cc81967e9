package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/incident-heatmap-go/internal/database"
	"github.com/jengzang/incident-heatmap-go/internal/models"
)

func newTestRepository(t *testing.T) *IncidentRepository {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "incidents.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn, zap.NewNop()).RunMigrations())
	return NewIncidentRepository(conn)
}

func TestIncidentRepositoryFindInBounds(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	n, err := repo.InsertBatch(ctx, []models.IncidentPoint{
		{Lat: 40.5, Lng: -75, Weight: 3},
		{Lat: 41.3, Lng: -72, Weight: 1}, // on the north-east corner
		{Lat: 42, Lng: -73, Weight: 5},   // outside
		{Lat: 40.7, Lng: -74, Weight: 2},
	}, "test")
	require.NoError(t, err)
	require.Equal(t, 4, n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)

	points, err := repo.FindInBounds(ctx, models.BoundingBox{West: -76, South: 40, East: -72, North: 41.3}, 0)
	require.NoError(t, err)
	require.Equal(t, []models.IncidentPoint{
		{Lat: 40.5, Lng: -75, Weight: 3},
		{Lat: 41.3, Lng: -72, Weight: 1},
		{Lat: 40.7, Lng: -74, Weight: 2},
	}, points)

	limited, err := repo.FindInBounds(ctx, models.BoundingBox{West: -76, South: 40, East: -72, North: 41.3}, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestIncidentRepositoryEmpty(t *testing.T) {
	repo := newTestRepository(t)

	n, err := repo.InsertBatch(context.Background(), nil, "test")
	require.NoError(t, err)
	require.Zero(t, n)

	points, err := repo.FindInBounds(context.Background(), models.BoundingBox{West: 0, South: 0, East: 1, North: 1}, 10)
	require.NoError(t, err)
	require.NotNil(t, points)
	require.Empty(t, points)
}
