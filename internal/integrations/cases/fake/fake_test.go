package fake

import (
	"context"
	"testing"

	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCaseByTrackingNumber_UnrecognizedPrefix(t *testing.T) {
	f := New()
	c, err := f.CaseByTrackingNumber(context.Background(), "ZZZ999")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestCaseByTrackingNumber_Deterministic(t *testing.T) {
	f := New()
	a, err := f.CaseByTrackingNumber(context.Background(), "FWW12345")
	require.NoError(t, err)
	require.NotNil(t, a)

	b, err := f.CaseByTrackingNumber(context.Background(), "FWW12345")
	require.NoError(t, err)
	require.Equal(t, a.Status, b.Status)
	require.Equal(t, a.CaseID, b.CaseID)
	require.Equal(t, len(a.Events), len(b.Events))

	require.Equal(t, "FWW12345", a.TrackingNumber)
	require.Equal(t, models.StatusDescription(a.Status), a.StatusDescription)
	require.Equal(t, "Shanghai, China", a.Origin)
	require.Equal(t, "Los Angeles, USA", a.Destination)
}

func TestCaseByTrackingNumber_EventsMostRecentFirst(t *testing.T) {
	f := New()
	c, err := f.CaseByTrackingNumber(context.Background(), "FWW12345")
	require.NoError(t, err)
	require.NotEmpty(t, c.Events)
	require.GreaterOrEqual(t, len(c.Events), 3)

	for i := 1; i < len(c.Events); i++ {
		require.True(t, c.Events[i].Timestamp.Before(c.Events[i-1].Timestamp),
			"events must be ordered most recent first")
	}
}

func TestCaseByTrackingNumber_DeliveredHasActualArrival(t *testing.T) {
	f := New()
	// Перебираем номера, пока заглушка не выдаст оба варианта.
	var sawDelivered, sawOther bool
	for i := 0; i < 200 && !(sawDelivered && sawOther); i++ {
		c, err := f.CaseByTrackingNumber(context.Background(), "FWW"+string(rune('A'+i%26))+string(rune('0'+i%10)))
		require.NoError(t, err)
		if c.Status == models.CaseStatusDelivered {
			sawDelivered = true
			require.NotNil(t, c.ActualArrival)
		} else {
			sawOther = true
			require.Nil(t, c.ActualArrival)
		}
	}
	require.True(t, sawDelivered)
	require.True(t, sawOther)
}

func TestCaseByCaseID_DerivesTrackingNumber(t *testing.T) {
	f := New()
	c, err := f.CaseByCaseID(context.Background(), "abcdef1234")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "FWWabcdef", c.TrackingNumber)

	short, err := f.CaseByCaseID(context.Background(), "ab")
	require.NoError(t, err)
	require.Equal(t, "FWWab", short.TrackingNumber)
}

func TestSearchCases_SynthesizedResult(t *testing.T) {
	f := New()
	out, err := f.SearchCases(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "FWWACME001", out[0].TrackingNumber)
	require.Equal(t, models.CaseStatusInTransit, out[0].Status)
}
