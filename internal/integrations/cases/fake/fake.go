package fake

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
)

// FakeLookup — детерминированная заглушка кейс-менеджмента.
// Кейс целиком выводится из номера отправления: одинаковый номер всегда
// даёт одинаковый статус и историю. Распознаются только номера FWW*.
type FakeLookup struct{}

func New() *FakeLookup { return &FakeLookup{} }

const recognizedPrefix = "FWW"

var eventTemplates = []models.TrackingEvent{
	{Location: "Shanghai, China", Status: "Pending", Description: "Shipment created and awaiting pickup"},
	{Location: "Shanghai, China", Status: "Picked Up", Description: "Shipment picked up from origin"},
	{Location: "Shanghai Port", Status: "In Transit", Description: "Departed origin port"},
	{Location: "Pacific Ocean", Status: "In Transit", Description: "In transit via ocean freight"},
	{Location: "Los Angeles Port", Status: "Arrived", Description: "Arrived at destination port"},
	{Location: "Los Angeles, USA", Status: "Customs Clearance", Description: "Customs clearance in progress"},
	{Location: "Los Angeles, USA", Status: "Cleared", Description: "Customs cleared"},
	{Location: "Distribution Center", Status: "Out for Delivery", Description: "Shipment out for delivery"},
	{Location: "Los Angeles, USA", Status: "Delivered", Description: "Successfully delivered"},
}

func (f *FakeLookup) CaseByTrackingNumber(ctx context.Context, trackingNumber string) (*models.TrackingCase, error) {
	if !strings.HasPrefix(trackingNumber, recognizedPrefix) {
		return nil, nil
	}
	return buildCase(trackingNumber), nil
}

func (f *FakeLookup) CaseByCaseID(ctx context.Context, caseID string) (*models.TrackingCase, error) {
	prefix := caseID
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return buildCase(recognizedPrefix + prefix), nil
}

func (f *FakeLookup) SearchCases(ctx context.Context, query string) ([]*models.TrackingCase, error) {
	// Реального поиска у заглушки нет: синтезируем один результат из запроса.
	return []*models.TrackingCase{{
		CaseID:            "12345678",
		TrackingNumber:    fmt.Sprintf("%s%s001", recognizedPrefix, strings.ToUpper(query)),
		Status:            models.CaseStatusInTransit,
		StatusDescription: "Shipment is on its way",
		Origin:            "Shanghai, China",
		Destination:       "Los Angeles, USA",
	}}, nil
}

func buildCase(trackingNumber string) *models.TrackingCase {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	seed := h.Sum32()
	rnd := rand.New(rand.NewSource(int64(seed)))

	statusIndex := rnd.Intn(len(models.CaseStatuses))
	status := models.CaseStatuses[statusIndex]

	now := time.Now().UTC()
	eta := now.AddDate(0, 0, 1+rnd.Intn(9))
	created := now.AddDate(0, 0, -(5 + rnd.Intn(25)))
	modified := now.Add(-time.Duration(1+rnd.Intn(47)) * time.Hour)

	var actual *time.Time
	if status == models.CaseStatusDelivered {
		t := now.AddDate(0, 0, -1)
		actual = &t
	}

	return &models.TrackingCase{
		CaseID:            fmt.Sprintf("%08x", seed),
		TrackingNumber:    trackingNumber,
		Status:            status,
		StatusDescription: models.StatusDescription(status),
		Origin:            "Shanghai, China",
		Destination:       "Los Angeles, USA",
		EstimatedArrival:  &eta,
		ActualArrival:     actual,
		CreatedOn:         created,
		ModifiedOn:        modified,
		Events:            buildEvents(statusIndex, now),
	}
}

func buildEvents(statusIndex int, now time.Time) []models.TrackingEvent {
	baseDate := now.AddDate(0, 0, -10)

	n := statusIndex + 3
	if n > len(eventTemplates) {
		n = len(eventTemplates)
	}

	events := make([]models.TrackingEvent, 0, n)
	for i := 0; i < n; i++ {
		e := eventTemplates[i]
		e.Timestamp = baseDate.AddDate(0, 0, i).Add(time.Duration(i*3) * time.Hour)
		events = append(events, e)
	}

	// Свежие вехи сверху.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events
}
