package cases

import (
	"context"

	"github.com/FocusWW/SiteAPI/internal/models"
)

// Lookup — поставщик кейсов (кейс-менеджмент, БД и т.п.).
// Отсутствие записи — это (nil, nil), ошибка означает недоступность провайдера.
type Lookup interface {
	CaseByTrackingNumber(ctx context.Context, trackingNumber string) (*models.TrackingCase, error)
	CaseByCaseID(ctx context.Context, caseID string) (*models.TrackingCase, error)
	SearchCases(ctx context.Context, query string) ([]*models.TrackingCase, error)
}
