package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"apix-lead-bot/internal/domain"
)

// Store хранит дневные корзины заявок в одном JSON-файле. Каждая
// мутация сбрасывает полное состояние на диск: запись идёт во
// временный файл с последующим атомарным переименованием, поэтому
// падение посреди записи не портит уже сохранённые данные.
type Store struct {
	mu     sync.RWMutex
	path   string
	leads  map[string][]domain.Lead
	logger *slog.Logger
}

// New загружает состояние из path. Отсутствие файла — не ошибка
// (пустое хранилище); нечитаемый или битый файл логируется и тоже даёт
// пустое хранилище, чтобы бот мог подняться после порчи данных.
func New(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, leads: make(map[string][]domain.Lead), logger: logger}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && logger != nil {
			logger.Warn("jsonstore: state file unreadable, starting empty", "path", path, "error", err)
		}
		return s, nil
	}
	if err := json.Unmarshal(data, &s.leads); err != nil {
		if logger != nil {
			logger.Warn("jsonstore: state file corrupt, starting empty", "path", path, "error", err)
		}
		s.leads = make(map[string][]domain.Lead)
	}
	return s, nil
}

func (s *Store) Append(dayKey string, lead domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[dayKey] = append(s.leads[dayKey], lead)
	// сбой записи не откатывает память: заявка остаётся в хранилище
	// до следующего успешного флаша
	return s.flush()
}

func (s *Store) Get(dayKey string) []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.leads[dayKey]
	out := make([]domain.Lead, len(bucket))
	copy(out, bucket)
	return out
}

func (s *Store) Evict(dayKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[dayKey]; !ok {
		return nil
	}
	delete(s.leads, dayKey)
	return s.flush()
}

// flush пишет полное состояние во временный файл и атомарно заменяет
// им основной. Вызывается под мьютексом.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.leads, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: marshal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonstore: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonstore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jsonstore: rename: %w", err)
	}
	return nil
}
