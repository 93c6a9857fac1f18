package usecase

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Scheduler раз в сутки, в заданный час UTC, вызывает run. Владеет
// единственным таймером: смена часа через SetHour отменяет прежний
// таймер и взводит новый атомарно, без двойного срабатывания.
type Scheduler struct {
	mu    sync.Mutex
	hour  int
	timer *time.Timer
	gen   uint64

	run    func()
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduler(hourUTC int, run func(), logger *slog.Logger, opts ...func(*Scheduler)) (*Scheduler, error) {
	if hourUTC < 0 || hourUTC > 23 {
		return nil, fmt.Errorf("scheduler: hour %d out of range 0-23", hourUTC)
	}
	s := &Scheduler{hour: hourUTC, run: run, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WithNow подменяет источник времени (для тестов)
func WithNow(now func() time.Time) func(*Scheduler) {
	return func(s *Scheduler) { s.now = now }
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arm()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Hour возвращает текущий час срабатывания (UTC).
func (s *Scheduler) Hour() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hour
}

// SetHour меняет час срабатывания. При ошибке валидации состояние и
// расписание не меняются.
func (s *Scheduler) SetHour(hourUTC int) error {
	if hourUTC < 0 || hourUTC > 23 {
		return fmt.Errorf("scheduler: hour %d out of range 0-23", hourUTC)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hour = hourUTC
	s.arm()
	return nil
}

// arm взводит таймер на ближайшее срабатывание, снимая прежний.
// Вызывается под мьютексом.
func (s *Scheduler) arm() {
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	next := s.NextRun(s.now())
	d := next.Sub(s.now())
	s.timer = time.AfterFunc(d, func() { s.fire(gen) })
	if s.logger != nil {
		s.logger.Info("daily report scheduled", "at", next.Format(time.RFC3339))
	}
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		// таймер был перевзведён, пока срабатывание уже стартовало
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.run()

	s.mu.Lock()
	if gen == s.gen {
		s.arm()
	}
	s.mu.Unlock()
}

// NextRun возвращает ближайший момент срабатывания строго после now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
