package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/server/repositories/meals"
	"github.com/drfoodie/nutritrack/internal/server/repositories/profiles"
)

// Snapshot is one account's stored state: the profile document (nil when the
// account never pushed one) and the meal documents, newest first.
type Snapshot struct {
	Profile json.RawMessage
	Meals   []json.RawMessage
}

// SnapshotService owns the per-account profile and meal documents.
type SnapshotService struct {
	profiles profiles.Repository
	meals    meals.Repository
}

func NewSnapshotService(p profiles.Repository, m meals.Repository) *SnapshotService {
	return &SnapshotService{profiles: p, meals: m}
}

// Get assembles the account snapshot. An account with no data yet gets an
// empty snapshot, not an error.
func (s *SnapshotService) Get(ctx context.Context, accountID string) (*Snapshot, error) {
	snap := &Snapshot{}

	doc, err := s.profiles.Get(ctx, accountID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	snap.Profile = doc

	docs, err := s.meals.GetAll(ctx, accountID)
	if err != nil {
		return nil, err
	}
	snap.Meals = make([]json.RawMessage, len(docs))
	for i, d := range docs {
		snap.Meals[i] = d
	}

	return snap, nil
}

// MergeProfile applies a profile push with field-level merge semantics: the
// incoming document's top-level fields overwrite the stored ones, fields
// absent from the push are preserved. The first push for an account stores
// the document as is.
func (s *SnapshotService) MergeProfile(ctx context.Context, accountID string, incoming []byte) error {
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(incoming, &patch); err != nil {
		return fmt.Errorf("invalid profile document: %w", err)
	}

	stored, err := s.profiles.Get(ctx, accountID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return s.profiles.Save(ctx, accountID, incoming)
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(stored, &merged); err != nil {
		// unreadable stored doc, the push replaces it
		return s.profiles.Save(ctx, accountID, incoming)
	}
	for k, v := range patch {
		merged[k] = v
	}

	doc, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.profiles.Save(ctx, accountID, doc)
}

// UpsertMeal stores one meal document under the id taken from the URL. The
// creation timestamp is read out of the document for ordering.
func (s *SnapshotService) UpsertMeal(ctx context.Context, accountID, id string, doc []byte) error {
	var meta struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(doc, &meta); err != nil {
		return fmt.Errorf("invalid meal document: %w", err)
	}
	return s.meals.Upsert(ctx, accountID, id, meta.Timestamp, doc)
}

// DeleteMeal removes one meal document. Unknown ids are a no-op.
func (s *SnapshotService) DeleteMeal(ctx context.Context, accountID, id string) error {
	return s.meals.DeleteByID(ctx, accountID, id)
}
