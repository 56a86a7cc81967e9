package service

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/incident-heatmap-go/internal/database"
	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/repository"
	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

func newTestIncidentService(t *testing.T) *IncidentService {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "incidents.db")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn, zap.NewNop()).RunMigrations())
	return NewIncidentService(repository.NewIncidentRepository(conn))
}

func TestIncidentServiceIngestAndList(t *testing.T) {
	svc := newTestIncidentService(t)
	ctx := context.Background()

	n, err := svc.Ingest(ctx, []models.IncidentPoint{{Lat: 40.5, Lng: -75, Weight: 1}, {Lat: 41, Lng: -73, Weight: 2}}, "api")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	points, err := svc.List(ctx, nycBounds, 0)
	require.NoError(t, err)
	require.Len(t, points, 2)

	_, err = svc.List(ctx, models.BoundingBox{West: 1, South: 0, East: 0, North: 1}, 0)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidBounds))
}

func TestIncidentServiceRejectsInvalidPoints(t *testing.T) {
	svc := newTestIncidentService(t)

	for _, p := range []models.IncidentPoint{
		{Lat: 91, Lng: 0, Weight: 1},
		{Lat: 0, Lng: -181, Weight: 1},
		{Lat: 0, Lng: 0, Weight: -1},
		{Lat: math.NaN(), Lng: 0, Weight: 1},
	} {
		_, err := svc.Ingest(context.Background(), []models.IncidentPoint{p}, "api")
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidRequest), "point %+v", p)
	}
}
