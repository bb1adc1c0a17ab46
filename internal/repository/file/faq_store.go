// Package file implements the FAQ repositories over plain JSON files, the
// original corpus format: faq.json for entries and a sidecar embeddings file
// written by `faqctl encode`.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"faq-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// Store owns both files and serializes access to them. It satisfies
// contract.FaqRepository and contract.FaqEmbeddingRepository.
type Store struct {
	mu         sync.Mutex
	faqPath    string
	vectorPath string
}

func NewStore(faqPath, vectorPath string) *Store {
	return &Store{
		faqPath:    faqPath,
		vectorPath: vectorPath,
	}
}

// --- FaqRepository ---

func (s *Store) Create(ctx context.Context, entry *entity.FaqEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entries = append(entries, entry)
	return s.writeEntries(entries)
}

func (s *Store) Update(ctx context.Context, entry *entity.FaqEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.Id == entry.Id {
			now := time.Now()
			entry.CreatedAt = e.CreatedAt
			entry.UpdatedAt = &now
			entries[i] = entry
			return s.writeEntries(entries)
		}
	}
	return errors.New("faq entry not found")
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	return s.writeEntries(kept)
}

func (s *Store) FindOne(ctx context.Context, id uuid.UUID) (*entity.FaqEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Id == id {
			return e, nil
		}
	}
	return nil, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*entity.FaqEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEntries()
}

// --- FaqEmbeddingRepository ---

type fileEmbedding struct {
	FaqEntryId uuid.UUID `json:"faq_entry_id"`
	Values     []float32 `json:"values"`
}

// EmbeddingStore exposes the sidecar vector file as a FaqEmbeddingRepository.
// It shares the parent Store's lock since encode rewrites both files.
type EmbeddingStore struct {
	store *Store
}

func NewEmbeddingStore(store *Store) *EmbeddingStore {
	return &EmbeddingStore{store: store}
}

func (s *EmbeddingStore) ReplaceAll(ctx context.Context, embeddings []*entity.FaqEmbedding) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	records := make([]fileEmbedding, len(embeddings))
	for i, e := range embeddings {
		records[i] = fileEmbedding{FaqEntryId: e.FaqEntryId, Values: e.EmbeddingValue}
	}
	return writeJSON(s.store.vectorPath, records)
}

func (s *EmbeddingStore) DeleteByFaqEntryId(ctx context.Context, faqEntryId uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	records, err := s.store.readEmbeddings()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.FaqEntryId != faqEntryId {
			kept = append(kept, r)
		}
	}
	return writeJSON(s.store.vectorPath, kept)
}

func (s *EmbeddingStore) FindAll(ctx context.Context) ([]*entity.FaqEmbedding, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	records, err := s.store.readEmbeddings()
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.FaqEmbedding, len(records))
	for i, r := range records {
		entities[i] = &entity.FaqEmbedding{
			FaqEntryId:     r.FaqEntryId,
			EmbeddingValue: r.Values,
		}
	}
	return entities, nil
}

// --- file plumbing ---

func (s *Store) readEntries() ([]*entity.FaqEntry, error) {
	var entries []*entity.FaqEntry
	if err := readJSON(s.faqPath, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) writeEntries(entries []*entity.FaqEntry) error {
	return writeJSON(s.faqPath, entries)
}

func (s *Store) readEmbeddings() ([]fileEmbedding, error) {
	var records []fileEmbedding
	if err := readJSON(s.vectorPath, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// writeJSON writes through a temp file and renames, so a crash mid-write
// never leaves a truncated corpus behind.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
