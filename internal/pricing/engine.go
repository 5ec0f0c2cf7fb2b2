// Package pricing implements the demand-based price escalation heuristic for
// the flights service. An Engine tracks per-flight search and booking
// activity in memory, mirrors it to a local key-value store so restarts do
// not reset demand, and decides whether a flight's price should carry the
// escalation markup.
package pricing

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"aerovoyage/pkg/kv"
	"aerovoyage/pkg/logger"
)

const (
	// activityWindow is how far back searches and bookings count as demand.
	activityWindow = 5 * time.Minute
	// stickyWindow is how long an escalation decision holds once made.
	stickyWindow = 10 * time.Minute
	// activityThreshold is the combined activity needed to escalate.
	activityThreshold = 3

	activityKeyPrefix   = "activity:"
	escalationKeyPrefix = "escalation:"
)

// BookingActivitySource exposes booking dates recorded by the bookings
// service. Values come back in whatever shape the store holds them; the
// engine normalizes them with ToInstant and filters by time itself, so the
// source only ever needs an equality lookup on the flight ID.
type BookingActivitySource interface {
	BookingDatesByFlight(ctx context.Context, flightID string) ([]any, error)
}

// activityLog holds the raw timestamps of recent searches and bookings for
// one flight. Entries older than stickyWindow are pruned on every write.
type activityLog struct {
	Searches []time.Time `json:"searches"`
	Bookings []time.Time `json:"bookings"`
}

type Engine struct {
	mu        sync.Mutex
	activity  map[string]*activityLog
	escalated map[string]time.Time

	remote BookingActivitySource
	store  kv.Store
	log    *logger.Logger
	now    func() time.Time
}

func NewEngine(remote BookingActivitySource, store kv.Store, log *logger.Logger) *Engine {
	e := &Engine{
		activity:  make(map[string]*activityLog),
		escalated: make(map[string]time.Time),
		remote:    remote,
		store:     store,
		log:       log,
		now:       time.Now,
	}
	e.restore()
	return e
}

// restore reloads mirrored activity and escalation state after a restart.
// Corrupt entries are dropped, they only ever make prices too low, not wrong.
func (e *Engine) restore() {
	if e.store == nil {
		return
	}

	restored := 0
	err := e.store.ForEach(activityKeyPrefix, func(key string, value []byte) error {
		var entry activityLog
		if err := json.Unmarshal(value, &entry); err != nil {
			e.log.Warn("Dropping corrupt activity entry", "key", key, "error", err)
			return nil
		}
		e.activity[key[len(activityKeyPrefix):]] = &entry
		restored++
		return nil
	})
	if err != nil {
		e.log.Warn("Failed to restore activity state", "error", err)
	}

	err = e.store.ForEach(escalationKeyPrefix, func(key string, value []byte) error {
		var at time.Time
		if err := at.UnmarshalJSON(value); err != nil {
			e.log.Warn("Dropping corrupt escalation entry", "key", key, "error", err)
			return nil
		}
		e.escalated[key[len(escalationKeyPrefix):]] = at
		return nil
	})
	if err != nil {
		e.log.Warn("Failed to restore escalation state", "error", err)
	}

	if restored > 0 || len(e.escalated) > 0 {
		e.log.Info("Restored demand state",
			"flights_with_activity", restored,
			"active_escalations", len(e.escalated),
		)
	}
}

// RecordSearch notes that flightID appeared in a search result just now.
func (e *Engine) RecordSearch(flightID string) {
	if flightID == "" {
		e.log.Warn("Ignoring search activity without flight ID")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entry := e.entryLocked(flightID)
	entry.Searches = append(entry.Searches, e.now())
	e.pruneLocked(flightID, entry)
	e.persistActivityLocked(flightID, entry)
}

// RecordBooking notes that a booking for flightID was confirmed just now.
func (e *Engine) RecordBooking(flightID string) {
	if flightID == "" {
		e.log.Warn("Ignoring booking activity without flight ID")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entry := e.entryLocked(flightID)
	entry.Bookings = append(entry.Bookings, e.now())
	e.pruneLocked(flightID, entry)
	e.persistActivityLocked(flightID, entry)
}

func (e *Engine) entryLocked(flightID string) *activityLog {
	entry, ok := e.activity[flightID]
	if !ok {
		entry = &activityLog{}
		e.activity[flightID] = entry
	}
	return entry
}

// pruneLocked drops timestamps too old to matter for either window, keeping
// the per-flight logs bounded.
func (e *Engine) pruneLocked(flightID string, entry *activityLog) {
	cutoff := e.now().Add(-stickyWindow)
	entry.Searches = pruneBefore(entry.Searches, cutoff)
	entry.Bookings = pruneBefore(entry.Bookings, cutoff)

	if len(entry.Searches) == 0 && len(entry.Bookings) == 0 {
		delete(e.activity, flightID)
	}
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (e *Engine) persistActivityLocked(flightID string, entry *activityLog) {
	if e.store == nil {
		return
	}

	key := activityKeyPrefix + flightID
	if len(entry.Searches) == 0 && len(entry.Bookings) == 0 {
		if err := e.store.Delete(key); err != nil {
			e.log.Warn("Failed to clear activity mirror", "flight_id", flightID, "error", err)
		}
		return
	}

	value, err := json.Marshal(entry)
	if err != nil {
		e.log.Warn("Failed to encode activity mirror", "flight_id", flightID, "error", err)
		return
	}
	if err := e.store.Set(key, value); err != nil {
		e.log.Warn("Failed to write activity mirror", "flight_id", flightID, "error", err)
	}
}

// ShouldEscalate reports whether flightID's price should carry the demand
// markup right now. A positive decision sticks for stickyWindow. The check
// never fails: if the remote booking source is unavailable its contribution
// counts as zero and the decision falls back to local activity alone.
func (e *Engine) ShouldEscalate(ctx context.Context, flightID string) bool {
	if flightID == "" {
		e.log.Error("Escalation check without flight ID")
		return false
	}

	now := e.now()

	e.mu.Lock()
	if at, ok := e.escalated[flightID]; ok {
		if now.Sub(at) < stickyWindow {
			e.mu.Unlock()
			return true
		}
		delete(e.escalated, flightID)
		e.clearEscalationLocked(flightID)
	}

	cutoff := now.Add(-activityWindow)
	var searchMinutes, localBookings int
	if entry, ok := e.activity[flightID]; ok {
		searchMinutes = uniqueMinutes(entry.Searches, cutoff)
		for _, t := range entry.Bookings {
			if t.After(cutoff) {
				localBookings++
			}
		}
	}
	e.mu.Unlock()

	remoteBookings := e.remoteBookingCount(ctx, flightID, cutoff)

	total := searchMinutes + remoteBookings + localBookings
	if total < activityThreshold {
		return false
	}

	e.log.Info("Escalating flight price",
		"flight_id", flightID,
		"search_minutes", searchMinutes,
		"remote_bookings", remoteBookings,
		"local_bookings", localBookings,
	)

	e.mu.Lock()
	e.escalated[flightID] = now
	e.persistEscalationLocked(flightID, now)
	e.mu.Unlock()

	return true
}

// uniqueMinutes counts distinct wall-clock minutes among timestamps after
// cutoff. Ten searches inside the same minute count as one unit of demand.
func uniqueMinutes(times []time.Time, cutoff time.Time) int {
	seen := make(map[time.Time]struct{})
	for _, t := range times {
		if t.After(cutoff) {
			seen[t.Truncate(time.Minute)] = struct{}{}
		}
	}
	return len(seen)
}

func (e *Engine) remoteBookingCount(ctx context.Context, flightID string, cutoff time.Time) int {
	if e.remote == nil {
		return 0
	}

	dates, err := e.remote.BookingDatesByFlight(ctx, flightID)
	if err != nil {
		e.log.Warn("Remote booking lookup failed, counting zero",
			"flight_id", flightID,
			"error", err,
		)
		return 0
	}

	count := 0
	for _, raw := range dates {
		instant, err := ToInstant(raw)
		if err != nil {
			e.log.Debug("Skipping unreadable booking date", "flight_id", flightID, "error", err)
			continue
		}
		if !instant.Before(cutoff) {
			count++
		}
	}
	return count
}

func (e *Engine) persistEscalationLocked(flightID string, at time.Time) {
	if e.store == nil {
		return
	}
	value, err := at.MarshalJSON()
	if err != nil {
		e.log.Warn("Failed to encode escalation mirror", "flight_id", flightID, "error", err)
		return
	}
	if err := e.store.Set(escalationKeyPrefix+flightID, value); err != nil {
		e.log.Warn("Failed to write escalation mirror", "flight_id", flightID, "error", err)
	}
}

func (e *Engine) clearEscalationLocked(flightID string) {
	if e.store == nil {
		return
	}
	if err := e.store.Delete(escalationKeyPrefix + flightID); err != nil {
		e.log.Warn("Failed to clear escalation mirror", "flight_id", flightID, "error", err)
	}
}
