package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	apperrors "franchise-estimator/internal/common/errors"
	"franchise-estimator/internal/common/logger"
	"franchise-estimator/internal/common/metrics"
	"franchise-estimator/internal/storage"
)

// Store is the saved-scenario list. The list is read from storage on first
// use and every mutation rewrites the whole blob.
//
// When a write fails the in-memory list keeps the mutation and the caller
// gets a STORAGE_UNAVAILABLE error; the next successful write persists it.
type Store struct {
	storage storage.Storage
	key     string
	ids     IDGenerator
	prefix  string
	log     logger.Logger

	mu      sync.Mutex
	loaded  bool
	records []Record
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithIDPrefix sets the prefix of generated ids (default "sc").
func WithIDPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithKey overrides DefaultStorageKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func NewStore(st storage.Storage, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		key:     DefaultStorageKey,
		ids:     RandomIDGenerator{},
		prefix:  "sc",
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateID returns a fresh id with the given prefix, or the store's
// configured prefix when empty.
func (s *Store) GenerateID(prefix string) string {
	if prefix == "" {
		prefix = s.prefix
	}
	return s.ids.NewID(prefix)
}

// List returns the saved records in insertion order. A missing or unparseable
// blob is an empty list; only an unreachable backend is an error.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return append([]Record(nil), s.records...), nil
}

// Get returns the record with id or a SCENARIO_NOT_FOUND error.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return Record{}, err
	}
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, apperrors.NewScenarioNotFoundError(id)
}

// Upsert replaces the record with the same id in place or appends it. A
// record without id gets a generated one. The stored record is returned even
// when persisting fails.
func (s *Store) Upsert(ctx context.Context, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return Record{}, err
	}

	if r.ID == "" {
		r.ID = s.ids.NewID(s.prefix)
	}
	r.SchemaVersion = CurrentSchemaVersion

	replaced := false
	for i := range s.records {
		if s.records[i].ID == r.ID {
			s.records[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		s.records = append(s.records, r)
	}

	s.log.Debug("Scenario upserted", map[string]interface{}{
		"scenarioId": r.ID,
		"replaced":   replaced,
		"count":      len(s.records),
	})
	return r, s.persist(ctx, "upsert")
}

// Remove drops the record with id. Removing an unknown id still rewrites the
// blob and is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept

	return s.persist(ctx, "remove")
}

// Reload discards the in-memory list and reads storage again.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.records = nil
	return s.ensureLoaded(ctx)
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.storage.Get(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.records = nil
	case err != nil:
		s.log.Error("Failed to read saved scenarios", map[string]interface{}{
			"key":   s.key,
			"error": err,
		})
		return apperrors.NewStorageUnavailableError("load", err)
	default:
		s.records = s.decode(raw)
	}

	s.loaded = true
	metrics.SavedScenarios.Set(float64(len(s.records)))
	return nil
}

func (s *Store) decode(raw []byte) []Record {
	if len(raw) == 0 {
		return nil
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.Warn("Cannot parse saved scenarios, starting with an empty list", map[string]interface{}{
			"key":   s.key,
			"error": err,
		})
		return nil
	}

	for _, r := range records {
		if v := r.version(); v > CurrentSchemaVersion {
			s.log.Warn("Saved scenario has a newer schema version", map[string]interface{}{
				"scenarioId":    r.ID,
				"schemaVersion": v,
			})
		}
	}
	return records
}

func (s *Store) persist(ctx context.Context, op string) error {
	metrics.SavedScenarios.Set(float64(len(s.records)))

	list := s.records
	if list == nil {
		list = []Record{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		metrics.ScenarioStoreWrites.WithLabelValues(op, "error").Inc()
		return apperrors.NewInternalError(err)
	}

	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		metrics.ScenarioStoreWrites.WithLabelValues(op, "error").Inc()
		s.log.Warn("Failed to persist saved scenarios; keeping in-memory list", map[string]interface{}{
			"key":       s.key,
			"operation": op,
			"count":     len(s.records),
			"error":     err,
		})
		return apperrors.NewStorageUnavailableError(op, err)
	}

	metrics.ScenarioStoreWrites.WithLabelValues(op, "ok").Inc()
	return nil
}

// IsWriteWarning reports whether err is a failed persist whose mutation is
// still held in memory. Load failures are not warnings.
func IsWriteWarning(err error) bool {
	stdErr, ok := apperrors.As(err)
	if !ok || stdErr.Code != apperrors.ErrCodeStorageUnavailable {
		return false
	}
	return stdErr.Metadata["operation"] != "load"
}
