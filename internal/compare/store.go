// Package compare owns the selection slots, the price comparison fetch
// cycle, and the derived chart view. All state lives behind one mutex;
// the view is replaced whole on every change, never patched in place.
package compare

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"CoinCompare/internal/chart"
	"CoinCompare/internal/model"
	"CoinCompare/internal/recorder"
)

// FetchErrorMessage is the single user-facing message for any failed
// fetch cycle, independent of which request failed.
const FetchErrorMessage = "failed to load price data, please try again"

// Store holds the two selection slots, per-slot display colors, the
// fetched series pair, and the current comparison view.
type Store struct {
	fetcher       *Fetcher
	rec           recorder.Recorder
	colorDebounce time.Duration
	ctx           context.Context

	mu          sync.Mutex
	selections  map[model.Slot]*model.Selection
	colors      map[model.Slot]string
	colorTimers map[model.Slot]*time.Timer
	seriesA     *model.PriceSeries
	seriesB     *model.PriceSeries
	status      model.Status
	errMsg      string
	view        model.ComparisonView
	subs        map[int]chan model.ComparisonView
	nextSub     int
}

// NewStore creates a Store with default colors per slot.
func NewStore(ctx context.Context, fetcher *Fetcher, rec recorder.Recorder, colorA, colorB string, colorDebounce time.Duration) *Store {
	s := &Store{
		fetcher:       fetcher,
		rec:           rec,
		colorDebounce: colorDebounce,
		ctx:           ctx,
		selections:    make(map[model.Slot]*model.Selection),
		colors:        map[model.Slot]string{model.SlotA: colorA, model.SlotB: colorB},
		colorTimers:   make(map[model.Slot]*time.Timer),
		status:        model.StatusIdle,
		subs:          make(map[int]chan model.ComparisonView),
	}
	s.recomputeLocked()
	return s
}

// SetSelection sets or clears (nil) a slot's selection. Any change on
// either slot invalidates both price series. A change that leaves both
// slots populated triggers exactly one fetch cycle; clearing either slot
// drops both series and any error and returns to idle.
func (s *Store) SetSelection(slot model.Slot, sel *model.Selection) error {
	if !slot.Valid() {
		return fmt.Errorf("unknown slot %q", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[slot] = sel
	s.seriesA = nil
	s.seriesB = nil
	s.errMsg = ""

	a, b := s.selections[model.SlotA], s.selections[model.SlotB]
	if a != nil && b != nil {
		s.startCycleLocked(*a, *b)
	} else {
		s.status = model.StatusIdle
	}

	s.recomputeLocked()
	return nil
}

// Select commits a picked search candidate as the slot's selection.
func (s *Store) Select(slot model.Slot, c model.SearchCandidate) error {
	sel := model.SelectionOf(c)
	return s.SetSelection(slot, &sel)
}

// Clear removes a slot's selection.
func (s *Store) Clear(slot model.Slot) error {
	return s.SetSelection(slot, nil)
}

// Refresh re-runs the fetch cycle for the current pair, if both slots are
// populated. Used by the auto-refresh scheduler; a no-op otherwise.
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, b := s.selections[model.SlotA], s.selections[model.SlotB]
	if a == nil || b == nil {
		return
	}
	s.startCycleLocked(*a, *b)
	s.recomputeLocked()
}

// startCycleLocked marks the store busy and launches one fetch cycle for
// the given pair. The in-flight request is never aborted by later slot
// changes; its result is discarded at commit time instead.
func (s *Store) startCycleLocked(a, b model.Selection) {
	s.status = model.StatusLoading
	s.errMsg = ""
	go s.runCycle(a, b)
}

func (s *Store) runCycle(a, b model.Selection) {
	start := time.Now()
	seriesA, seriesB, err := s.fetcher.FetchPair(s.ctx, a, b)

	rec := &recorder.CycleRecord{CoinA: a.ID, CoinB: b.ID, Duration: time.Since(start)}

	s.mu.Lock()
	if !s.pairMatchesLocked(a.ID, b.ID) {
		// Superseded by a newer selection pair. Not an error: discard
		// silently without touching state.
		s.mu.Unlock()
		log.Printf("[INFO] discarding stale fetch result for (%s, %s)", a.ID, b.ID)
		rec.Outcome = "STALE"
		s.record(rec)
		return
	}

	if err != nil {
		log.Printf("[ERROR] fetch cycle (%s, %s): %v", a.ID, b.ID, err)
		s.seriesA = nil
		s.seriesB = nil
		s.status = model.StatusError
		s.errMsg = FetchErrorMessage
		rec.Outcome = "FAILED"
		rec.Error = err.Error()
	} else {
		s.seriesA = seriesA
		s.seriesB = seriesB
		s.status = model.StatusReady
		s.errMsg = ""
		rec.Outcome = "COMMITTED"
		rec.PointsA = len(seriesA.Points)
		rec.PointsB = len(seriesB.Points)
	}
	s.recomputeLocked()
	s.mu.Unlock()

	s.record(rec)
}

// pairMatchesLocked reports whether both current selections still match
// the pair a resolved cycle was started for. Identity of both selections
// is required, not just one.
func (s *Store) pairMatchesLocked(idA, idB string) bool {
	a, b := s.selections[model.SlotA], s.selections[model.SlotB]
	return a != nil && b != nil && a.ID == idA && b.ID == idB
}

// SetColor updates a slot's line color. Color changes never touch the
// fetch path; the view recompute is debounced so dragging a color picker
// doesn't flood subscribers.
func (s *Store) SetColor(slot model.Slot, color string) error {
	if !slot.Valid() {
		return fmt.Errorf("unknown slot %q", slot)
	}
	if !model.ValidHexColor(color) {
		return fmt.Errorf("invalid color %q, want #rrggbb", color)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.colors[slot] = color
	if t := s.colorTimers[slot]; t != nil {
		t.Stop()
	}
	s.colorTimers[slot] = time.AfterFunc(s.colorDebounce, func() {
		s.mu.Lock()
		s.recomputeLocked()
		s.mu.Unlock()
	})
	return nil
}

// Selection returns a copy of the slot's current selection, or nil.
func (s *Store) Selection(slot model.Slot) *model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel := s.selections[slot]; sel != nil {
		cp := *sel
		return &cp
	}
	return nil
}

// Color returns the slot's current line color.
func (s *Store) Color(slot model.Slot) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colors[slot]
}

// Status returns the current fetch state.
func (s *Store) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// View returns the current comparison view.
func (s *Store) View() model.ComparisonView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Subscribe registers for view updates. The returned channel is buffered
// and coalescing: if the subscriber lags, older views are dropped in
// favor of the newest. The second return value unsubscribes.
func (s *Store) Subscribe() (<-chan model.ComparisonView, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan model.ComparisonView, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// recomputeLocked rebuilds the view from current state and replaces it
// whole, then notifies subscribers.
func (s *Store) recomputeLocked() {
	s.view = chart.Build(chart.Input{
		SeriesA: s.seriesA,
		SeriesB: s.seriesB,
		ColorA:  s.colors[model.SlotA],
		ColorB:  s.colors[model.SlotB],
		Status:  s.status,
		Error:   s.errMsg,
	})

	for _, ch := range s.subs {
		select {
		case ch <- s.view:
		default:
			// Drop the stale pending view, then push the newest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.view:
			default:
			}
		}
	}
}

func (s *Store) record(rec *recorder.CycleRecord) {
	if err := s.rec.RecordCycle(rec); err != nil {
		log.Printf("[ERROR] record fetch cycle: %v", err)
	}
}
