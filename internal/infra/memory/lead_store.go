package memory

import (
	"sync"

	"apix-lead-bot/internal/domain"
)

// LeadStore — хранилище корзин в памяти, без персистентности.
// Используется в тестах вместо файлового или SQLite-хранилища.
type LeadStore struct {
	mu    sync.RWMutex
	leads map[string][]domain.Lead
}

func NewLeadStore() *LeadStore {
	return &LeadStore{leads: make(map[string][]domain.Lead)}
}

func (s *LeadStore) Append(dayKey string, lead domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[dayKey] = append(s.leads[dayKey], lead)
	return nil
}

func (s *LeadStore) Get(dayKey string) []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.leads[dayKey]
	out := make([]domain.Lead, len(bucket))
	copy(out, bucket)
	return out
}

func (s *LeadStore) Evict(dayKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leads, dayKey)
	return nil
}
