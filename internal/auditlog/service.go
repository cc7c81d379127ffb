package auditlog

import (
	"context"
	"encoding/json"
	"log"
)

// Service records audit entries for every mutating operation. Recording
// is best-effort: a failed write is logged but never fails the request
// that triggered it.
type Service interface {
	LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string)
	List(f Filter) ([]AuditLog, int64, error)
}

type service struct {
	repo      *Repository
	publisher *Publisher
}

// NewService wires the repository and an optional kafka publisher
// (nil when no brokers are configured).
func NewService(repo *Repository, publisher *Publisher) Service {
	return &service{repo: repo, publisher: publisher}
}

func (s *service) LogAction(ctx context.Context, userID *uint, action string, details map[string]interface{}, ip, status string) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("audit: could not marshal details for %s: %v", action, err)
		payload = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   payload,
		IPAddress: ip,
		Status:    status,
	}

	if err := s.repo.Create(entry); err != nil {
		log.Printf("audit: could not record %s: %v", action, err)
		return
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, entry); err != nil {
			log.Printf("audit: could not publish %s: %v", action, err)
		}
	}
}

func (s *service) List(f Filter) ([]AuditLog, int64, error) {
	return s.repo.List(f)
}
