// Package streak tracks consecutive study days. A day is a UTC calendar
// date: both transitions and decay compare date-only values in UTC, so
// behavior near local midnight does not depend on the machine timezone.
package streak

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/abhisek/pyqdeck/internal/kvstore"
)

const streakKey = "streak"

// dateLayout is the persisted day format.
const dateLayout = "2006-01-02"

// Record is the persisted streak state.
type Record struct {
	Streak         int    `json:"streak"`
	BestStreak     int    `json:"bestStreak"`
	TodayCount     int    `json:"todayCount"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
}

// Tracker persists the streak record and applies day-boundary logic.
type Tracker struct {
	kv kvstore.Store
}

// NewTracker creates a streak tracker on top of kv.
func NewTracker(kv kvstore.Store) *Tracker {
	return &Tracker{kv: kv}
}

// Load returns the current record. Read failures and malformed blobs
// degrade to a zero record.
func (t *Tracker) Load(ctx context.Context) Record {
	raw, ok, err := t.kv.Get(ctx, streakKey)
	if err != nil {
		slog.Warn("streak read failed", "error", err)
		return Record{}
	}
	if !ok {
		return Record{}
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Warn("streak blob malformed, treating as empty", "error", err)
		return Record{}
	}
	return rec
}

func (t *Tracker) save(ctx context.Context, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := t.kv.Set(ctx, streakKey, string(raw)); err != nil {
		slog.Warn("streak write failed", "error", err)
		return err
	}
	return nil
}

// utcDate truncates now to its UTC calendar date string.
func utcDate(now time.Time) string {
	return now.UTC().Format(dateLayout)
}

// daysSince returns the number of whole calendar days from last to
// today. Negative means last is in the future (clock skew).
func daysSince(last, today string) (int, bool) {
	lt, err := time.ParseInLocation(dateLayout, last, time.UTC)
	if err != nil {
		return 0, false
	}
	tt, err := time.ParseInLocation(dateLayout, today, time.UTC)
	if err != nil {
		return 0, false
	}
	return int(tt.Sub(lt).Hours() / 24), true
}

// RecordActivity registers one completion event at now and returns the
// updated record. Same-day activity only bumps TodayCount; the first
// activity of a consecutive day extends the streak; anything else
// (first ever, a gap, or a future LastActiveDate) resets to 1.
func (t *Tracker) RecordActivity(ctx context.Context, now time.Time) (Record, error) {
	rec := t.Load(ctx)
	today := utcDate(now)

	days, known := -1, false
	if rec.LastActiveDate != "" {
		days, known = daysSince(rec.LastActiveDate, today)
	}

	switch {
	case known && days == 0:
		rec.TodayCount++
	case known && days == 1:
		rec.Streak++
		rec.TodayCount = 1
		rec.LastActiveDate = today
	default:
		rec.Streak = 1
		rec.TodayCount = 1
		rec.LastActiveDate = today
	}

	if rec.Streak > rec.BestStreak {
		rec.BestStreak = rec.Streak
	}

	err := t.save(ctx, rec)
	return rec, err
}

// CheckAndReset decays stale state forward without ever incrementing:
// a gap of exactly one day zeroes only TodayCount, a longer gap (or a
// future LastActiveDate) zeroes Streak and TodayCount. BestStreak is
// never touched. Safe to call any number of times; once the record is
// current it is a no-op, so ordering against RecordActivity within the
// same day does not matter.
func (t *Tracker) CheckAndReset(ctx context.Context, now time.Time) (Record, error) {
	rec := t.Load(ctx)
	if rec.LastActiveDate == "" {
		return rec, nil
	}

	days, ok := daysSince(rec.LastActiveDate, utcDate(now))
	if !ok {
		// Unparseable date: reset fully, keep best.
		days = 2
	}

	var changed bool
	switch {
	case days == 1 && rec.TodayCount != 0:
		rec.TodayCount = 0
		changed = true
	case (days > 1 || days < 0) && (rec.Streak != 0 || rec.TodayCount != 0):
		rec.Streak = 0
		rec.TodayCount = 0
		changed = true
	}

	if !changed {
		return rec, nil
	}
	err := t.save(ctx, rec)
	return rec, err
}
