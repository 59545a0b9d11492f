package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Drawing targets on the page.
const (
	TrendTarget      = "weeklyTrend"
	cardTargetPrefix = "miniChart"
)

var ErrTargetBusy = errors.New("drawing target already has a chart bound")

func CardTarget(i int) string {
	return fmt.Sprintf("%s%d", cardTargetPrefix, i)
}

// ChartHandle is a chart bound to a drawing target on a Surface.
type ChartHandle struct {
	ID     string
	Target string
	Spec   ChartSpec

	disposed atomic.Bool
}

func (h *ChartHandle) Disposed() bool { return h.disposed.Load() }

// Surface tracks the charts currently bound to drawing targets.
// Each target holds at most one live chart. Safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	byID     map[string]*ChartHandle
	byTarget map[string]*ChartHandle
}

func NewSurface() *Surface {
	return &Surface{
		byID:     make(map[string]*ChartHandle),
		byTarget: make(map[string]*ChartHandle),
	}
}

// Bind creates a chart on target. It fails with ErrTargetBusy if the target
// still holds an undisposed chart.
func (s *Surface) Bind(target string, spec ChartSpec) (*ChartHandle, error) {
	if strings.TrimSpace(target) == "" {
		return nil, errors.New("bind chart: target is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byTarget[target]; ok {
		return nil, fmt.Errorf("bind chart on %q: %w", target, ErrTargetBusy)
	}

	h := &ChartHandle{
		ID:     uuid.NewString(),
		Target: target,
		Spec:   spec,
	}
	s.byID[h.ID] = h
	s.byTarget[target] = h

	return h, nil
}

// Dispose releases h and frees its target. Nil or already disposed handles are ignored.
func (s *Surface) Dispose(h *ChartHandle) {
	if h == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposeLocked(h)
}

func (s *Surface) disposeLocked(h *ChartHandle) {
	if !h.disposed.CompareAndSwap(false, true) {
		return
	}
	delete(s.byID, h.ID)
	if cur, ok := s.byTarget[h.Target]; ok && cur == h {
		delete(s.byTarget, h.Target)
	}
}

// ClearCards disposes every chart bound to a card target and returns how many were removed.
func (s *Surface) ClearCards() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for target, h := range s.byTarget {
		if strings.HasPrefix(target, cardTargetPrefix) {
			s.disposeLocked(h)
			n++
		}
	}
	return n
}

func (s *Surface) Lookup(id string) (*ChartHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byID[id]
	return h, ok
}

func (s *Surface) Bound(target string) (*ChartHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.byTarget[target]
	return h, ok
}

// Len returns the number of live charts.
func (s *Surface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
