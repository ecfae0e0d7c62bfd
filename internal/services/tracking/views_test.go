package tracking

import (
	"testing"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/stretchr/testify/require"
)

func TestToPublicView_OmitsStaffFields(t *testing.T) {
	c := sampleCase("FWW12345")
	v := ToPublicView(c)

	require.Equal(t, c.TrackingNumber, v.TrackingNumber)
	require.Equal(t, c.Status, v.Status)
	require.Equal(t, c.Origin, v.Origin)
	require.Equal(t, c.Destination, v.Destination)
	require.Len(t, v.Events, len(c.Events))
}

func TestToStaffView_SupersetOfPublic(t *testing.T) {
	c := sampleCase("FWW12345")
	pub := ToPublicView(c)
	staff := ToStaffView(c)

	require.Equal(t, pub.TrackingNumber, staff.TrackingNumber)
	require.Equal(t, pub.Status, staff.Status)
	require.Equal(t, pub.Events, staff.Events)

	require.Equal(t, c.CaseID, staff.CaseID)
	require.Equal(t, c.InternalNotes, staff.InternalNotes)
	require.Equal(t, c.CustomerName, staff.CustomerName)
	require.Equal(t, c.CustomerEmail, staff.CustomerEmail)
	require.Equal(t, c.CreatedOn, staff.CreatedOn)
}

func TestProjections_Idempotent(t *testing.T) {
	c := sampleCase("FWW12345")

	first := ToPublicView(c)
	second := ToPublicView(c)
	require.Equal(t, first, second)

	sFirst := ToStaffView(c)
	sSecond := ToStaffView(c)
	require.Equal(t, sFirst, sSecond)
}

func TestProjections_EventSliceIsolated(t *testing.T) {
	c := sampleCase("FWW12345")

	v := ToPublicView(c)
	v.Events[0].Location = "MUTATED"
	v.Events[0].Timestamp = time.Time{}

	again := ToPublicView(c)
	require.Equal(t, "Shanghai Port", again.Events[0].Location)
	require.Equal(t, "Shanghai Port", c.Events[0].Location)
}

func TestToPublicView_EmptyEvents(t *testing.T) {
	c := sampleCase("FWW12345")
	c.Events = nil

	v := ToPublicView(c)
	require.NotNil(t, v.Events)
	require.Empty(t, v.Events)
}

func TestToStaffView_DeliveredCarriesActualArrival(t *testing.T) {
	c := sampleCase("FWW12345")
	now := time.Now().UTC()
	c.Status = models.CaseStatusDelivered
	c.ActualArrival = &now

	staff := ToStaffView(c)
	require.NotNil(t, staff.ActualArrival)
	require.Equal(t, now, *staff.ActualArrival)

	pub := ToPublicView(c)
	require.Equal(t, models.CaseStatusDelivered, pub.Status)
}
