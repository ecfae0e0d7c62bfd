package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	byNumberIn  string
	byNumberOut *models.TrackingCase
	byNumberErr error

	byIDIn  string
	byIDOut *models.TrackingCase

	searchIn  string
	searchOut []*models.TrackingCase
}

func (f *fakeLookup) CaseByTrackingNumber(ctx context.Context, trackingNumber string) (*models.TrackingCase, error) {
	f.byNumberIn = trackingNumber
	return f.byNumberOut, f.byNumberErr
}
func (f *fakeLookup) CaseByCaseID(ctx context.Context, caseID string) (*models.TrackingCase, error) {
	f.byIDIn = caseID
	return f.byIDOut, nil
}
func (f *fakeLookup) SearchCases(ctx context.Context, query string) ([]*models.TrackingCase, error) {
	f.searchIn = query
	return f.searchOut, nil
}

type fakeCache struct {
	m map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok := c.m[key]
	return b, ok, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.m[key] = value
	return nil
}

type fakeProducer struct {
	topics []string
	keys   []string
	values [][]byte
}

func (p *fakeProducer) Publish(ctx context.Context, topic string, key, value []byte) error {
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, string(key))
	p.values = append(p.values, value)
	return nil
}

func sampleCase(n string) *models.TrackingCase {
	now := time.Now().UTC()
	return &models.TrackingCase{
		CaseID:            "a1b2c3d4",
		TrackingNumber:    n,
		Status:            models.CaseStatusInTransit,
		StatusDescription: models.StatusDescription(models.CaseStatusInTransit),
		Origin:            "Shanghai, China",
		Destination:       "Los Angeles, USA",
		InternalNotes:     "customer called twice",
		CustomerName:      "Acme Imports",
		CustomerEmail:     "ops@acme.example",
		CreatedOn:         now.AddDate(0, 0, -7),
		ModifiedOn:        now,
		Events: []models.TrackingEvent{
			{Timestamp: now, Location: "Shanghai Port", Status: "In Transit", Description: "Departed origin port"},
		},
	}
}

func TestPublicTracking_NormalizesBeforeLookup(t *testing.T) {
	p := &fakeLookup{byNumberOut: sampleCase("FWW12345")}
	s := New(p, nil, 0, nil, "")

	out, err := s.PublicTracking(context.Background(), "  fww12345 ")
	require.NoError(t, err)
	require.Equal(t, "FWW12345", p.byNumberIn)
	require.Equal(t, "FWW12345", out.TrackingNumber)
}

func TestPublicTracking_NotFound(t *testing.T) {
	p := &fakeLookup{}
	s := New(p, nil, 0, nil, "")

	_, err := s.PublicTracking(context.Background(), "ZZZ999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPublicTracking_EmptyNumber(t *testing.T) {
	s := New(&fakeLookup{}, nil, 0, nil, "")
	_, err := s.PublicTracking(context.Background(), "   ")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestPublicTracking_ProviderErrorIsNotNotFound(t *testing.T) {
	p := &fakeLookup{byNumberErr: errors.New("dataverse down")}
	s := New(p, nil, 0, nil, "")

	_, err := s.PublicTracking(context.Background(), "FWW12345")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestPublicTracking_StripsStaffFields(t *testing.T) {
	p := &fakeLookup{byNumberOut: sampleCase("FWW12345")}
	s := New(p, nil, 0, nil, "")

	out, err := s.PublicTracking(context.Background(), "FWW12345")
	require.NoError(t, err)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	require.NotContains(t, string(b), "internalNotes")
	require.NotContains(t, string(b), "Acme Imports")
	require.NotContains(t, string(b), "ops@acme.example")
}

func TestPublicTracking_CacheHit_NoProvider(t *testing.T) {
	c := &fakeCache{m: map[string][]byte{}}
	b, _ := json.Marshal(sampleCase("FWW777"))
	c.m["case:FWW777:current"] = b

	p := &fakeLookup{}
	s := New(p, c, 10*time.Minute, nil, "")

	out, err := s.PublicTracking(context.Background(), "fww777")
	require.NoError(t, err)
	require.Equal(t, "FWW777", out.TrackingNumber)
	require.Empty(t, p.byNumberIn) // провайдера не трогали
}

func TestPublicTracking_CacheMiss_FillsCache(t *testing.T) {
	c := &fakeCache{m: map[string][]byte{}}
	p := &fakeLookup{byNumberOut: sampleCase("FWW777")}
	s := New(p, c, 10*time.Minute, nil, "")

	_, err := s.PublicTracking(context.Background(), "FWW777")
	require.NoError(t, err)
	require.Contains(t, c.m, "case:FWW777:current")
}

func TestPublicTracking_CacheTTLZero_Disabled(t *testing.T) {
	c := &fakeCache{m: map[string][]byte{}}
	p := &fakeLookup{byNumberOut: sampleCase("FWW777")}
	s := New(p, c, 0, nil, "")

	_, err := s.PublicTracking(context.Background(), "FWW777")
	require.NoError(t, err)
	require.Empty(t, c.m)
}

func TestPublicTracking_BadCacheBytes_IsMiss(t *testing.T) {
	c := &fakeCache{m: map[string][]byte{"case:FWW777:current": []byte("not-json")}}
	p := &fakeLookup{byNumberOut: sampleCase("FWW777")}
	s := New(p, c, 10*time.Minute, nil, "")

	out, err := s.PublicTracking(context.Background(), "FWW777")
	require.NoError(t, err)
	require.Equal(t, "FWW777", out.TrackingNumber)
	require.Equal(t, "FWW777", p.byNumberIn)
}

func TestStaffTracking_FullView(t *testing.T) {
	p := &fakeLookup{byIDOut: sampleCase("FWW12345")}
	s := New(p, nil, 0, nil, "")

	out, err := s.StaffTracking(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	require.Equal(t, "a1b2c3d4", p.byIDIn)
	require.Equal(t, "a1b2c3d4", out.CaseID)
	require.Equal(t, "customer called twice", out.InternalNotes)
	require.Equal(t, "Acme Imports", out.CustomerName)
}

func TestStaffTracking_NotFound(t *testing.T) {
	s := New(&fakeLookup{}, nil, 0, nil, "")
	_, err := s.StaffTracking(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_MapsToStaffViews(t *testing.T) {
	p := &fakeLookup{searchOut: []*models.TrackingCase{sampleCase("FWW1"), sampleCase("FWW2")}}
	s := New(p, nil, 0, nil, "")

	out, err := s.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Equal(t, "acme", p.searchIn)
	require.Len(t, out, 2)
	require.Equal(t, "FWW1", out[0].TrackingNumber)
}

func TestSearch_EmptyResultIsNotError(t *testing.T) {
	s := New(&fakeLookup{}, nil, 0, nil, "")
	out, err := s.Search(context.Background(), "none")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestAudit_PublishedBestEffort(t *testing.T) {
	pr := &fakeProducer{}
	p := &fakeLookup{byNumberOut: sampleCase("FWW12345")}
	s := New(p, nil, 0, pr, "site.tracking.audit")

	_, err := s.PublicTracking(context.Background(), "FWW12345")
	require.NoError(t, err)
	require.Equal(t, []string{"site.tracking.audit"}, pr.topics)
	require.Equal(t, "FWW12345", pr.keys[0])
	require.Contains(t, string(pr.values[0]), `"found":true`)
}
