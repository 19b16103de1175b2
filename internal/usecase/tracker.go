package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flight-tracker/live-flight-tracker/internal/domain"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/logger"
	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/timeutil"
)

// DefaultPollInterval is the refresh period used when none is configured.
const DefaultPollInterval = 5 * time.Second

// ErrSuperseded is returned by Select when the tracker moved on (stop, restart
// or another selection) before the lookup finished. The result was discarded.
var ErrSuperseded = errors.New("selection superseded")

// State is the polling state of a Tracker.
type State int

const (
	StateIdle State = iota
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the tracker's observable state.
type Snapshot struct {
	// SessionID identifies the current or most recent polling run
	SessionID string

	State State

	// Version increases with every applied change; consumers can drop older snapshots
	Version uint64

	Viewport    *domain.Viewport
	BoundingBox *domain.BoundingBox
	Zoom        int

	DetailViewOpen bool

	// Flights is the merged list shown on the map
	Flights []domain.FlightRecord

	// SelectedNumber is the flight number whose detail is being tracked
	SelectedNumber string
	Selected       *domain.FlightRecord

	// LastShown is the most recently displayed detail; it outlives the selection
	LastShown *domain.FlightRecord

	LastError   error
	LastErrorAt time.Time
	UpdatedAt   time.Time
}

// TrackerConfig contains configuration options for the Tracker.
type TrackerConfig struct {
	PollInterval time.Duration
	Clock        timeutil.Clock
	Logger       *logger.Logger

	// OnUpdate is called with a fresh snapshot after every applied change.
	OnUpdate func(Snapshot)

	// OnError is called for every reported (non-stale) error.
	OnError func(error)

	// OnFlights is called with each freshly fetched flight list once applied.
	OnFlights func(box domain.BoundingBox, flights []domain.FlightRecord)
}

// Tracker keeps a live list of flights for a map viewport and the detail of
// one selected flight, refreshing both on a fixed interval while polling.
//
// Every result is gated on the generation captured when its request was
// issued; Stop and Start bump the generation so late results are dropped.
// Hooks are called outside the lock on the goroutine that applied the change.
type Tracker struct {
	source    domain.FlightSource
	interval  time.Duration
	clock     timeutil.Clock
	log       *logger.Logger
	onUpdate  func(Snapshot)
	onError   func(error)
	onFlights func(domain.BoundingBox, []domain.FlightRecord)

	mu         sync.Mutex
	state      State
	generation uint64
	version    uint64
	sessionID  string
	cancel     context.CancelFunc
	done       chan struct{}
	kick       chan struct{}

	viewport   *domain.Viewport
	box        *domain.BoundingBox
	zoom       int
	detailOpen bool

	flights        []domain.FlightRecord
	selectedNumber string
	selected       *domain.FlightRecord
	lastShown      *domain.FlightRecord

	lastErr   error
	lastErrAt time.Time
	updatedAt time.Time
}

// NewTracker creates an idle Tracker reading from source.
// If config is nil, defaults are used.
func NewTracker(source domain.FlightSource, config *TrackerConfig) *Tracker {
	cfg := TrackerConfig{}
	if config != nil {
		cfg = *config
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}

	return &Tracker{
		source:    source,
		interval:  cfg.PollInterval,
		clock:     cfg.Clock,
		log:       logger.OrNop(cfg.Logger).WithComponent("tracker"),
		onUpdate:  cfg.OnUpdate,
		onError:   cfg.OnError,
		onFlights: cfg.OnFlights,
	}
}

// Start moves the tracker from Idle to Polling. It refreshes immediately and
// then on every interval until Stop. ctx supplies values only; its
// cancellation does not stop polling. Starting while polling is a no-op.
func (t *Tracker) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	if t.state == StatePolling {
		t.mu.Unlock()
		return nil
	}
	t.generation++
	gen := t.generation
	t.state = StatePolling
	t.sessionID = uuid.NewString()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	kick := make(chan struct{}, 1)
	t.cancel = cancel
	t.done = done
	t.kick = kick
	ticker := t.clock.NewTicker(t.interval)

	snap := t.commitLocked()
	sessionID := t.sessionID
	t.mu.Unlock()

	t.log.Info().Str("session_id", sessionID).Dur("interval", t.interval).Msg("polling started")
	t.emit(snap)

	go t.run(runCtx, gen, ticker, kick, done)
	return nil
}

// Stop moves the tracker to Idle, cancels in-flight requests and discards any
// result that lands afterwards. It does not wait for the loop to exit and is
// safe to call repeatedly.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.state != StatePolling {
		t.mu.Unlock()
		return
	}
	t.stopLocked()
	snap := t.commitLocked()
	t.mu.Unlock()

	t.log.Info().Str("session_id", snap.SessionID).Msg("polling stopped")
	t.emit(snap)
}

// Shutdown stops polling and waits for the loop goroutine to exit or ctx to end.
func (t *Tracker) Shutdown(ctx context.Context) error {
	t.Stop()

	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetViewport stores the visible map region. While polling, the flight list
// is refreshed right away instead of waiting for the next tick.
func (t *Tracker) SetViewport(v domain.Viewport) error {
	if err := v.Validate(); err != nil {
		return err
	}
	zoom, err := v.Zoom()
	if err != nil {
		return err
	}
	box := v.BoundingBox()

	t.mu.Lock()
	t.viewport = &v
	t.box = &box
	t.zoom = zoom
	kick := t.kickLocked()
	snap := t.commitLocked()
	t.mu.Unlock()

	t.log.Debug().Str("bbox", box.String()).Int("zoom", zoom).Msg("viewport changed")
	wake(kick)
	t.emit(snap)
	return nil
}

// SetDetailViewOpen pauses (open) or resumes (closed) flight list refreshes.
// Detail refreshes for the selected flight continue either way.
func (t *Tracker) SetDetailViewOpen(open bool) {
	t.mu.Lock()
	if t.detailOpen == open {
		t.mu.Unlock()
		return
	}
	t.detailOpen = open
	var kick chan struct{}
	if !open {
		kick = t.kickLocked()
	}
	snap := t.commitLocked()
	t.mu.Unlock()

	wake(kick)
	t.emit(snap)
}

// Select looks up flightIata and makes it the selected flight. The record is
// merged into the flight list and becomes the last shown detail. It does not
// start polling.
func (t *Tracker) Select(ctx context.Context, flightIata string) (*domain.FlightRecord, error) {
	number := strings.ToUpper(strings.TrimSpace(flightIata))
	if number == "" {
		return nil, domain.NewValidationError("flightIata", "must not be empty")
	}

	t.mu.Lock()
	gen := t.generation
	t.selectedNumber = number
	t.selected = nil
	snap := t.commitLocked()
	t.mu.Unlock()
	t.emit(snap)

	log := t.log.WithFlight(number, "")
	record, err := t.source.FlightByNumber(ctx, number)

	t.mu.Lock()
	if t.generation != gen || t.selectedNumber != number {
		t.mu.Unlock()
		log.Debug().Err(err).Msg("discarding superseded selection result")
		return nil, ErrSuperseded
	}
	if err != nil {
		t.selectedNumber = ""
		t.recordErrorLocked(err)
		snap = t.commitLocked()
		t.mu.Unlock()

		log.Warn().Err(err).Msg("flight selection failed")
		t.reportError(err)
		t.emit(snap)
		return nil, err
	}
	t.applyDetailLocked(record)
	snap = t.commitLocked()
	t.mu.Unlock()

	log.Info().Str("icao24", record.ICAO24).Msg("flight selected")
	t.emit(snap)
	return record, nil
}

// ClearSelection stops tracking the selected flight. The last shown detail is
// kept and stays on the map.
func (t *Tracker) ClearSelection() {
	t.mu.Lock()
	if t.selectedNumber == "" && t.selected == nil {
		t.mu.Unlock()
		return
	}
	t.selectedNumber = ""
	t.selected = nil
	t.flights = MergeFlights(t.flights, nil, t.lastShown)
	snap := t.commitLocked()
	t.mu.Unlock()

	t.emit(snap)
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// State returns the current polling state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// run is the polling loop for one Start. Cycles run sequentially so they never overlap.
func (t *Tracker) run(ctx context.Context, gen uint64, ticker timeutil.Ticker, kick, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	t.refreshFlights(ctx, gen)
	t.refreshDetail(ctx, gen)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			t.refreshFlights(ctx, gen)
			t.refreshDetail(ctx, gen)
		case <-kick:
			t.refreshFlights(ctx, gen)
		}
	}
}

// kickLocked returns the wake-up channel of the running loop, or nil when idle.
func (t *Tracker) kickLocked() chan struct{} {
	if t.state != StatePolling {
		return nil
	}
	return t.kick
}

// wake requests an immediate flight list refresh without blocking.
// A nil channel is ignored.
func wake(kick chan struct{}) {
	if kick == nil {
		return
	}
	select {
	case kick <- struct{}{}:
	default:
	}
}

// refreshFlights fetches the aircraft inside the current bounding box.
// Failures are reported and polling continues.
func (t *Tracker) refreshFlights(ctx context.Context, gen uint64) {
	t.mu.Lock()
	if !t.currentLocked(gen) || t.detailOpen || t.box == nil {
		t.mu.Unlock()
		return
	}
	box, zoom := *t.box, t.zoom
	t.mu.Unlock()

	fresh, err := t.source.FlightsInBoundingBox(ctx, box, zoom)

	t.mu.Lock()
	if !t.currentLocked(gen) {
		t.mu.Unlock()
		t.log.Debug().Err(err).Msg("discarding stale flight list")
		return
	}
	if t.box == nil || *t.box != box {
		// viewport moved while fetching; the wake-up refresh covers the new one
		t.mu.Unlock()
		t.log.Debug().Err(err).Str("bbox", box.String()).Msg("discarding flight list for previous viewport")
		return
	}
	if t.detailOpen {
		t.mu.Unlock()
		t.log.Debug().Err(err).Msg("discarding flight list, detail view opened")
		return
	}
	if err != nil {
		t.recordErrorLocked(err)
		snap := t.commitLocked()
		t.mu.Unlock()

		t.log.Warn().Err(err).Str("bbox", box.String()).Msg("flight list refresh failed")
		t.reportError(err)
		t.emit(snap)
		return
	}
	t.flights = MergeFlights(fresh, t.selected, t.lastShown)
	t.lastErr = nil
	t.lastErrAt = time.Time{}
	snap := t.commitLocked()
	t.mu.Unlock()

	t.log.Debug().Int("count", len(fresh)).Msg("flight list refreshed")
	if t.onFlights != nil {
		t.onFlights(box, fresh)
	}
	t.emit(snap)
}

// refreshDetail re-fetches the selected flight. A failure drops the selection,
// keeping the last shown record, and stops polling.
func (t *Tracker) refreshDetail(ctx context.Context, gen uint64) {
	t.mu.Lock()
	if !t.currentLocked(gen) || t.selectedNumber == "" {
		t.mu.Unlock()
		return
	}
	number := t.selectedNumber
	t.mu.Unlock()

	log := t.log.WithFlight(number, "")
	record, err := t.source.FlightByNumber(ctx, number)

	t.mu.Lock()
	if !t.currentLocked(gen) {
		t.mu.Unlock()
		log.Debug().Err(err).Msg("discarding stale flight detail")
		return
	}
	if t.selectedNumber != number {
		t.mu.Unlock()
		return
	}
	if err != nil {
		t.recordErrorLocked(err)
		t.selectedNumber = ""
		t.selected = nil
		t.flights = MergeFlights(t.flights, nil, t.lastShown)
		t.stopLocked()
		snap := t.commitLocked()
		t.mu.Unlock()

		log.Error().Err(err).Msg("flight detail refresh failed, polling stopped")
		t.reportError(err)
		t.emit(snap)
		return
	}
	t.applyDetailLocked(record)
	snap := t.commitLocked()
	t.mu.Unlock()

	t.emit(snap)
}

func (t *Tracker) currentLocked(gen uint64) bool {
	return t.state == StatePolling && t.generation == gen
}

func (t *Tracker) stopLocked() {
	t.state = StateIdle
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Tracker) applyDetailLocked(record *domain.FlightRecord) {
	t.selected = record
	t.lastShown = record
	t.flights = upsertFlight(t.flights, *record)
}

func (t *Tracker) recordErrorLocked(err error) {
	t.lastErr = err
	t.lastErrAt = t.clock.Now()
}

// commitLocked marks a change and returns the resulting snapshot.
func (t *Tracker) commitLocked() Snapshot {
	t.version++
	t.updatedAt = t.clock.Now()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:      t.sessionID,
		State:          t.state,
		Version:        t.version,
		Zoom:           t.zoom,
		DetailViewOpen: t.detailOpen,
		Flights:        append([]domain.FlightRecord(nil), t.flights...),
		SelectedNumber: t.selectedNumber,
		Selected:       t.selected,
		LastShown:      t.lastShown,
		LastError:      t.lastErr,
		LastErrorAt:    t.lastErrAt,
		UpdatedAt:      t.updatedAt,
	}
	if t.viewport != nil {
		v := *t.viewport
		snap.Viewport = &v
	}
	if t.box != nil {
		b := *t.box
		snap.BoundingBox = &b
	}
	return snap
}

func (t *Tracker) emit(snap Snapshot) {
	if t.onUpdate != nil {
		t.onUpdate(snap)
	}
}

func (t *Tracker) reportError(err error) {
	if t.onError != nil {
		t.onError(err)
	}
}

// MergeFlights builds the displayed list from a fresh fetch. The fresh order
// is kept. The selected record, or the last shown one when nothing is
// selected, is appended if the fresh list does not already contain it.
func MergeFlights(fresh []domain.FlightRecord, selected, lastShown *domain.FlightRecord) []domain.FlightRecord {
	merged := make([]domain.FlightRecord, len(fresh), len(fresh)+1)
	copy(merged, fresh)

	carry := selected
	if carry == nil {
		carry = lastShown
	}
	if carry != nil && indexOfFlight(merged, *carry) < 0 {
		merged = append(merged, *carry)
	}
	return merged
}

// upsertFlight replaces the entry for record or appends it.
func upsertFlight(flights []domain.FlightRecord, record domain.FlightRecord) []domain.FlightRecord {
	out := append([]domain.FlightRecord(nil), flights...)
	if i := indexOfFlight(out, record); i >= 0 {
		out[i] = record
		return out
	}
	return append(out, record)
}

// indexOfFlight finds record by transponder address, falling back to the
// IATA flight number for records that have no address.
func indexOfFlight(flights []domain.FlightRecord, record domain.FlightRecord) int {
	for i := range flights {
		if sameFlight(flights[i], record) {
			return i
		}
	}
	return -1
}

func sameFlight(a, b domain.FlightRecord) bool {
	if a.ICAO24 != "" && b.ICAO24 != "" {
		return a.ICAO24 == b.ICAO24
	}
	return a.FlightIATA != "" && strings.EqualFold(a.FlightIATA, b.FlightIATA)
}
