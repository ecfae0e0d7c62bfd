package pgcases

import (
	"context"
	"testing"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPGCases_LookupFlow(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "admin",
			"POSTGRES_PASSWORD": "admin",
			"POSTGRES_DB":       "site_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://admin:admin@" + host + ":" + port.Port() + "/site_test?sslmode=disable"
	st, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	now := time.Now().UTC().Truncate(time.Second)
	eta := now.AddDate(0, 0, 3)
	c := &models.TrackingCase{
		CaseID:            "a1b2c3d4",
		TrackingNumber:    "FWW12345",
		Status:            models.CaseStatusInTransit,
		StatusDescription: models.StatusDescription(models.CaseStatusInTransit),
		Origin:            "Shanghai, China",
		Destination:       "Los Angeles, USA",
		EstimatedArrival:  &eta,
		InternalNotes:     "fragile cargo",
		CustomerName:      "Acme Imports",
		CustomerEmail:     "ops@acme.example",
		CreatedOn:         now.AddDate(0, 0, -7),
		ModifiedOn:        now,
		Events: []models.TrackingEvent{
			{Timestamp: now.Add(-time.Hour), Location: "Shanghai Port", Status: "In Transit", Description: "Departed origin port"},
			{Timestamp: now.AddDate(0, 0, -2), Location: "Shanghai, China", Status: "Pending", Description: "Shipment created"},
		},
	}
	require.NoError(t, st.SaveCase(ctx, c))

	byNumber, err := st.CaseByTrackingNumber(ctx, "FWW12345")
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	require.Equal(t, "a1b2c3d4", byNumber.CaseID)
	require.Equal(t, "fragile cargo", byNumber.InternalNotes)
	require.Len(t, byNumber.Events, 2)
	// Свежая веха первой.
	require.True(t, byNumber.Events[0].Timestamp.After(byNumber.Events[1].Timestamp))

	missing, err := st.CaseByTrackingNumber(ctx, "FWW00000")
	require.NoError(t, err)
	require.Nil(t, missing)

	byID, err := st.CaseByCaseID(ctx, "a1b2c3d4")
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "FWW12345", byID.TrackingNumber)

	found, err := st.SearchCases(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "a1b2c3d4", found[0].CaseID)
	require.Len(t, found[0].Events, 2)

	none, err := st.SearchCases(ctx, "globex")
	require.NoError(t, err)
	require.Empty(t, none)
}
