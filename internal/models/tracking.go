package models

import "time"

// Статусы кейса в том виде, в каком их отдаёт кейс-менеджмент.
const (
	CaseStatusPending          = "Pending"
	CaseStatusInTransit        = "In Transit"
	CaseStatusCustomsClearance = "Customs Clearance"
	CaseStatusOutForDelivery   = "Out for Delivery"
	CaseStatusDelivered        = "Delivered"
)

// CaseStatuses — полный список статусов в порядке жизненного цикла.
var CaseStatuses = []string{
	CaseStatusPending,
	CaseStatusInTransit,
	CaseStatusCustomsClearance,
	CaseStatusOutForDelivery,
	CaseStatusDelivered,
}

// StatusDescription возвращает человекочитаемое описание статуса.
func StatusDescription(status string) string {
	switch status {
	case CaseStatusPending:
		return "Shipment is being prepared for pickup"
	case CaseStatusInTransit:
		return "Shipment is on its way to the destination"
	case CaseStatusCustomsClearance:
		return "Shipment is being processed through customs"
	case CaseStatusOutForDelivery:
		return "Shipment is on the delivery vehicle"
	case CaseStatusDelivered:
		return "Shipment has been successfully delivered"
	default:
		return "Status unknown"
	}
}

// TrackingCase — запись об отправлении из кейс-менеджмента.
// После возврата из провайдера считается иммутабельной.
type TrackingCase struct {
	CaseID            string          `json:"caseId"`
	TrackingNumber    string          `json:"trackingNumber"`
	Status            string          `json:"status"`
	StatusDescription string          `json:"statusDescription"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	EstimatedArrival  *time.Time      `json:"estimatedArrival,omitempty"`
	ActualArrival     *time.Time      `json:"actualArrival,omitempty"`
	CreatedOn         time.Time       `json:"createdOn"`
	ModifiedOn        time.Time       `json:"modifiedOn"`
	InternalNotes     string          `json:"internalNotes"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"customerEmail"`
	Events            []TrackingEvent `json:"events"` // most recent first
}

// TrackingEvent — веха маршрута. Живёт только внутри кейса.
type TrackingEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

// PublicTrackingView — проекция кейса для анонимных пользователей.
// Никогда не содержит внутренних заметок и PII клиента.
type PublicTrackingView struct {
	TrackingNumber    string          `json:"trackingNumber"`
	Status            string          `json:"status"`
	StatusDescription string          `json:"statusDescription"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	EstimatedArrival  *time.Time      `json:"estimatedArrival,omitempty"`
	Events            []TrackingEvent `json:"events"`
}

// StaffTrackingView — полная проекция для сотрудников.
// Каждое публичное поле видно и здесь (embedded), обратное неверно.
type StaffTrackingView struct {
	PublicTrackingView
	CaseID        string     `json:"caseId"`
	ActualArrival *time.Time `json:"actualArrival,omitempty"`
	CreatedOn     time.Time  `json:"createdOn"`
	ModifiedOn    time.Time  `json:"modifiedOn"`
	InternalNotes string     `json:"internalNotes"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
}
