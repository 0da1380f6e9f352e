/*
scheduler.go - Automated schedule lifecycle sweeper

PURPOSE:
  Periodically advances vacation schedules through their lifecycle:
  - Scheduled bookings whose start date has arrived become Active
  - Active bookings whose end date has passed become Completed

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each sweep loads the candidates by status and checks dates
  - Transitions go through the store, so lifecycle rules still apply
  - A failed transition on one schedule never blocks the rest

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Enabled: Whether the sweeper is active (default: true)

USAGE:
  sweeper := NewLifecycleSweeper(store)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - store/sqlite: UpdateScheduleStatus lifecycle enforcement
  - leave/types.go: ScheduleStatus transitions
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/atlashr/leave-engine/leave"
	"github.com/atlashr/leave-engine/store/sqlite"
)

// LifecycleSweeper advances schedule statuses as calendar time passes.
type LifecycleSweeper struct {
	store *sqlite.Store

	CheckInterval time.Duration
	Enabled       bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewLifecycleSweeper creates a sweeper with default settings.
func NewLifecycleSweeper(store *sqlite.Store) *LifecycleSweeper {
	return &LifecycleSweeper{
		store:         store,
		CheckInterval: time.Hour,
		Enabled:       true,
	}
}

// Start launches the background sweep loop. Safe to call once.
func (s *LifecycleSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || !s.Enabled {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	go s.loop()
	log.Printf("lifecycle sweeper started (interval: %s)", s.CheckInterval)
}

// Stop terminates the sweep loop.
func (s *LifecycleSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
	log.Println("lifecycle sweeper stopped")
}

func (s *LifecycleSweeper) loop() {
	// Sweep once immediately so a restarted server catches up.
	s.Sweep(context.Background(), leave.Today())

	ticker := time.NewTicker(s.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background(), leave.Today())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one pass for the given date. Exported so tests and admin
// tooling can trigger it deterministically.
func (s *LifecycleSweeper) Sweep(ctx context.Context, today leave.Date) (activated, completed int) {
	scheduled, err := s.store.ListSchedulesByStatus(ctx, leave.StatusScheduled)
	if err != nil {
		log.Printf("sweep: failed to list scheduled bookings: %v", err)
	}
	for _, vs := range scheduled {
		if vs.StartDate.After(today) {
			continue
		}
		if err := s.store.UpdateScheduleStatus(ctx, vs.ID, leave.StatusActive); err != nil {
			log.Printf("sweep: failed to activate %s: %v", vs.ID, err)
			continue
		}
		activated++
	}

	active, err := s.store.ListSchedulesByStatus(ctx, leave.StatusActive)
	if err != nil {
		log.Printf("sweep: failed to list active bookings: %v", err)
	}
	for _, vs := range active {
		if !vs.EndDate.Before(today) {
			continue
		}
		if err := s.store.UpdateScheduleStatus(ctx, vs.ID, leave.StatusCompleted); err != nil {
			log.Printf("sweep: failed to complete %s: %v", vs.ID, err)
			continue
		}
		completed++
	}

	if activated > 0 || completed > 0 {
		log.Printf("sweep: activated %d, completed %d schedules", activated, completed)
	}
	return activated, completed
}
