package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ewintr.nl/ytwatch/model"
)

// SeenKey is the single key holding the JSON array of seen video ids.
const SeenKey = "seen_videos"

// CorruptStateError means the stored seen set could not be parsed.
type CorruptStateError struct {
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("stored seen videos are corrupt: %v", e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// PersistenceError means the seen set could not be written back.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("unable to save seen videos: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type SeenStore struct {
	kv KV
}

func NewSeenStore(kv KV) *SeenStore {
	return &SeenStore{kv: kv}
}

// Load always returns a usable set. A missing entry is an empty set. When the
// entry can not be read or parsed, the empty set is returned together with
// the error so the caller can log it and carry on.
func (s *SeenStore) Load(ctx context.Context) (model.SeenSet, error) {
	raw, err := s.kv.Get(ctx, SeenKey)
	switch {
	case errors.Is(err, ErrNotFound):
		return model.NewSeenSet(), nil
	case err != nil:
		return model.NewSeenSet(), fmt.Errorf("unable to read seen videos: %w", err)
	}

	var ids []model.YoutubeVideoID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return model.NewSeenSet(), &CorruptStateError{Err: err}
	}

	return model.NewSeenSet(ids...), nil
}

// Save overwrites the stored entry with the full set.
func (s *SeenStore) Save(ctx context.Context, seen model.SeenSet) error {
	body, err := json.Marshal(seen.IDs())
	if err != nil {
		return &PersistenceError{Err: err}
	}
	if err := s.kv.Put(ctx, SeenKey, string(body)); err != nil {
		return &PersistenceError{Err: err}
	}

	return nil
}

func (s *SeenStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, SeenKey); err != nil {
		return fmt.Errorf("unable to clear seen videos: %w", err)
	}

	return nil
}
