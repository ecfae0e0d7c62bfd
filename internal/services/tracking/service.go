package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/FocusWW/SiteAPI/internal/broker/messages"
	"github.com/FocusWW/SiteAPI/internal/cache"
	"github.com/FocusWW/SiteAPI/internal/integrations/cases"
	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/pkg/errors"
)

// ErrNotFound — валидный ввод, но записи нет. Отличается от ошибки
// провайдера: та означает "спросить не смогли".
var ErrNotFound = errors.New("tracking case not found")

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type Service struct {
	provider cases.Lookup
	cache    cache.BytesCache
	caseTTL  time.Duration

	producer   Producer
	auditTopic string
}

func New(provider cases.Lookup, c cache.BytesCache, caseTTL time.Duration, producer Producer, auditTopic string) *Service {
	return &Service{
		provider:   provider,
		cache:      c,
		caseTTL:    caseTTL,
		producer:   producer,
		auditTopic: auditTopic,
	}
}

// NormalizeNumber приводит номер отправления к канонической форме.
// Провайдер чувствителен к регистру и пробелам, поэтому нормализация —
// часть контракта, а не косметика.
func NormalizeNumber(trackingNumber string) string {
	return strings.ToUpper(strings.TrimSpace(trackingNumber))
}

func (s *Service) PublicTracking(ctx context.Context, trackingNumber string) (*models.PublicTrackingView, error) {
	n := NormalizeNumber(trackingNumber)
	if n == "" {
		return nil, errors.New("trackingNumber is required")
	}

	c, err := s.caseByNumber(ctx, n)
	if err != nil {
		return nil, err
	}
	s.auditLookup(ctx, messages.TrackingLookupLogged{TrackingNumber: n, Found: c != nil})
	if c == nil {
		return nil, ErrNotFound
	}

	view := ToPublicView(c)
	return &view, nil
}

func (s *Service) StaffTracking(ctx context.Context, caseID string) (*models.StaffTrackingView, error) {
	if strings.TrimSpace(caseID) == "" {
		return nil, errors.New("caseId is required")
	}

	c, err := s.provider.CaseByCaseID(ctx, caseID)
	if err != nil {
		return nil, errors.Wrap(err, "case by id")
	}
	s.auditLookup(ctx, messages.TrackingLookupLogged{CaseID: caseID, Staff: true, Found: c != nil})
	if c == nil {
		return nil, ErrNotFound
	}

	view := ToStaffView(c)
	return &view, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*models.StaffTrackingView, error) {
	found, err := s.provider.SearchCases(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "search cases")
	}

	out := make([]*models.StaffTrackingView, 0, len(found))
	for _, c := range found {
		view := ToStaffView(c)
		out = append(out, &view)
	}
	return out, nil
}

// caseByNumber — сквозное чтение через кэш текущего состояния кейса.
// Кэш необязателен: любая его ошибка трактуется как промах.
func (s *Service) caseByNumber(ctx context.Context, n string) (*models.TrackingCase, error) {
	useCache := s.cache != nil && s.caseTTL > 0

	if useCache {
		b, ok, err := s.cache.Get(ctx, currentKey(n))
		if err == nil && ok {
			var c models.TrackingCase
			if json.Unmarshal(b, &c) == nil {
				return &c, nil
			}
		}
	}

	c, err := s.provider.CaseByTrackingNumber(ctx, n)
	if err != nil {
		return nil, errors.Wrap(err, "case by tracking number")
	}

	if c != nil && useCache {
		b, _ := json.Marshal(c)
		_ = s.cache.Set(ctx, currentKey(n), b, s.caseTTL)
	}
	return c, nil
}

func (s *Service) auditLookup(ctx context.Context, m messages.TrackingLookupLogged) {
	if s.producer == nil || s.auditTopic == "" {
		return
	}
	m.At = time.Now().UTC()
	key := m.TrackingNumber
	if key == "" {
		key = m.CaseID
	}
	b, _ := json.Marshal(m)
	_ = s.producer.Publish(ctx, s.auditTopic, []byte(key), b)
}

func currentKey(trackingNumber string) string {
	return fmt.Sprintf("case:%s:current", trackingNumber)
}
