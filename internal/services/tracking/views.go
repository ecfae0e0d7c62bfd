package tracking

import "github.com/FocusWW/SiteAPI/internal/models"

// Проекции кейса — чистые функции без I/O. Вехи копируются по значению:
// мутация возвращённого представления не должна быть видна другим проекциям.

func ToPublicView(c *models.TrackingCase) models.PublicTrackingView {
	return models.PublicTrackingView{
		TrackingNumber:    c.TrackingNumber,
		Status:            c.Status,
		StatusDescription: c.StatusDescription,
		Origin:            c.Origin,
		Destination:       c.Destination,
		EstimatedArrival:  c.EstimatedArrival,
		Events:            copyEvents(c.Events),
	}
}

func ToStaffView(c *models.TrackingCase) models.StaffTrackingView {
	return models.StaffTrackingView{
		PublicTrackingView: ToPublicView(c),
		CaseID:             c.CaseID,
		ActualArrival:      c.ActualArrival,
		CreatedOn:          c.CreatedOn,
		ModifiedOn:         c.ModifiedOn,
		InternalNotes:      c.InternalNotes,
		CustomerName:       c.CustomerName,
		CustomerEmail:      c.CustomerEmail,
	}
}

func copyEvents(evs []models.TrackingEvent) []models.TrackingEvent {
	out := make([]models.TrackingEvent, len(evs))
	copy(out, evs)
	return out
}
