// Package journey persists the last subject path a user was viewing,
// plus the first-run onboarding flag.
package journey

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/abhisek/pyqdeck/internal/kvstore"
)

const (
	journeyKey    = "journey"
	onboardingKey = "onboarding_seen"
)

// ErrInvalidJourney is returned when a save is attempted with any of
// the three path IDs missing.
var ErrInvalidJourney = errors.New("journey: branch, semester and subject ids are all required")

// Record is the singleton "resume here" state, overwritten on every
// subject visit.
type Record struct {
	BranchID     string `json:"branchId"`
	SemID        string `json:"semId"`
	SubjectID    string `json:"subjectId"`
	BranchName   string `json:"branchName,omitempty"`
	SemesterName string `json:"semesterName,omitempty"`
	SubjectName  string `json:"subjectName,omitempty"`
}

func (r Record) valid() bool {
	return strings.TrimSpace(r.BranchID) != "" &&
		strings.TrimSpace(r.SemID) != "" &&
		strings.TrimSpace(r.SubjectID) != ""
}

// Store persists the journey record and onboarding flag.
type Store struct {
	kv kvstore.Store
}

// NewStore creates a journey store on top of kv.
func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Save overwrites the journey unconditionally. Records missing any of
// the three IDs are rejected before any write, leaving the store
// unchanged.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if !rec.valid() {
		slog.Warn("rejecting invalid journey", "record", rec)
		return ErrInvalidJourney
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, journeyKey, string(raw)); err != nil {
		slog.Warn("journey write failed", "error", err)
		return err
	}
	return nil
}

// Load returns the saved journey, or ok=false when none exists. A
// malformed or invalid record is treated as absent and the key is
// cleared so the next read is clean (self-healing).
func (s *Store) Load(ctx context.Context) (Record, bool) {
	raw, ok, err := s.kv.Get(ctx, journeyKey)
	if err != nil {
		slog.Warn("journey read failed", "error", err)
		return Record{}, false
	}
	if !ok {
		return Record{}, false
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || !rec.valid() {
		slog.Warn("journey record malformed, clearing", "error", err)
		if delErr := s.kv.Delete(ctx, journeyKey); delErr != nil {
			slog.Warn("journey clear failed", "error", delErr)
		}
		return Record{}, false
	}
	return rec, true
}

// Clear removes the saved journey.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, journeyKey)
}

// OnboardingSeen reports whether the first-run hints were dismissed.
func (s *Store) OnboardingSeen(ctx context.Context) bool {
	v, ok, err := s.kv.Get(ctx, onboardingKey)
	if err != nil {
		slog.Warn("onboarding read failed", "error", err)
		return false
	}
	return ok && v == "true"
}

// MarkOnboardingSeen records that the first-run hints were shown.
func (s *Store) MarkOnboardingSeen(ctx context.Context) error {
	if err := s.kv.Set(ctx, onboardingKey, "true"); err != nil {
		slog.Warn("onboarding write failed", "error", err)
		return err
	}
	return nil
}
