// Package dashboard composes the live panels of one dashboard session. Mounting a session
// seeds its stores, starts its simulators and refresh bridges, and streams rendered frames to
// a single emit function until the session is closed.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/live"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	"github.com/lifeline/response-dashboard/internal/core/simulation"
	"github.com/lifeline/response-dashboard/internal/core/view"
	"github.com/lifeline/response-dashboard/internal/pkg/metrics"
)

// Panel names as seen by clients.
const (
	PanelAmbulances    = "ambulances"
	PanelGPS           = "gps"
	PanelPatients      = "patients"
	PanelNotifications = "notifications"
	PanelCommunity     = "community"
	PanelRequests      = "requests"
)

// Frame is one rendered panel snapshot.
type Frame struct {
	Panel   string `json:"panel"`
	Version uint64 `json:"version"`
	Data    any    `json:"data"`
}

// EmitFunc receives frames. Calls are serialized by the session.
type EmitFunc func(Frame)

// Periods are the simulator tick intervals.
type Periods struct {
	GPS           time.Duration
	AmbulanceETA  time.Duration
	PatientETA    time.Duration
	Notifications time.Duration
}

// DefaultPeriods returns the standard tick intervals.
func DefaultPeriods() Periods {
	return Periods{
		GPS:           2 * time.Second,
		AmbulanceETA:  3 * time.Second,
		PatientETA:    5 * time.Second,
		Notifications: 8 * time.Second,
	}
}

// Sources are the backend collaborators for bridged panels. With a nil Feed the bridged
// panels are not mounted.
type Sources struct {
	Feed     ports.ChangeFeed
	Posts    live.Fetcher[domain.CommunityPost]
	Requests live.Fetcher[domain.EmergencyRequest]
}

// Options tune a session. Zero values fall back to defaults.
type Options struct {
	Periods  Periods
	Rand     simulation.Rand
	Now      func() time.Time
	Notifier ports.Notifier
	Logger   zerolog.Logger
}

// Session is one mounted dashboard.
type Session struct {
	scope *live.Scope
	log   zerolog.Logger

	emitMu sync.Mutex
	emit   EmitFunc

	closeOnce sync.Once
	closers   []func()
}

// Mount seeds every panel and starts its producers. The session lives until Close is called
// or ctx ends; Close must be called either way.
func Mount(ctx context.Context, emit EmitFunc, src Sources, opts Options) *Session {
	opts = withDefaults(opts)
	s := &Session{
		scope: live.NewScope(ctx),
		log:   opts.Logger,
		emit:  emit,
	}

	// Tick producers share one Rand; math/rand/v2 sources are not safe for concurrent use.
	var randMu sync.Mutex
	draw := func(fn func(r simulation.Rand)) {
		randMu.Lock()
		defer randMu.Unlock()
		fn(opts.Rand)
	}

	ambulances := live.NewStore(simulation.SeedAmbulances())
	watch(s, PanelAmbulances, ambulances, view.RenderTracker)
	s.tick(PanelAmbulances, opts.Periods.AmbulanceETA, func() {
		ambulances.Update(func(items []domain.Ambulance) []domain.Ambulance {
			draw(func(r simulation.Rand) { items = simulation.StepTracker(items, r) })
			return items
		})
	})

	gps := live.NewStore(simulation.SeedLocations())
	watch(s, PanelGPS, gps, view.RenderMap)
	s.tick(PanelGPS, opts.Periods.GPS, func() {
		gps.Update(func(items []domain.AmbulanceLocation) []domain.AmbulanceLocation {
			draw(func(r simulation.Rand) { items = simulation.StepGPS(items, r) })
			return items
		})
	})

	patients := live.NewStore(simulation.SeedPatients())
	watch(s, PanelPatients, patients, view.RenderPatients)
	s.tick(PanelPatients, opts.Periods.PatientETA, func() {
		patients.Update(simulation.StepPatients)
	})

	notifications := live.NewStore(simulation.SeedNotifications(opts.Now()))
	watch(s, PanelNotifications, notifications, view.RenderNotifications)
	s.tick(PanelNotifications, opts.Periods.Notifications, func() {
		notifications.Update(func(items []domain.Notification) []domain.Notification {
			draw(func(r simulation.Rand) { items = simulation.StepNotifications(items, r, opts.Now()) })
			return items
		})
	})

	if src.Feed != nil && src.Posts != nil {
		posts := live.NewStore[domain.CommunityPost](nil)
		watch(s, PanelCommunity, posts, view.RenderRecords[domain.CommunityPost])
		s.bridge(live.NewBridge(domain.KindCommunityPosts, src.Feed, src.Posts, posts, opts.Notifier, s.log))
	}
	if src.Feed != nil && src.Requests != nil {
		requests := live.NewStore[domain.EmergencyRequest](nil)
		watch(s, PanelRequests, requests, view.RenderRecords[domain.EmergencyRequest])
		s.bridge(live.NewBridge(domain.KindEmergencyRequests, src.Feed, src.Requests, requests, opts.Notifier, s.log))
	}

	metrics.SessionsActive.Inc()
	s.log.Info().Msg("dashboard session mounted")
	return s
}

// Close unmounts the session. No frame is emitted after Close returns.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.scope.Close()
		for _, c := range s.closers {
			c()
		}
		metrics.SessionsActive.Dec()
		s.log.Info().Msg("dashboard session closed")
	})
}

// Done is closed when the session's context ends.
func (s *Session) Done() <-chan struct{} { return s.scope.Context().Done() }

func (s *Session) tick(panel string, period time.Duration, step func()) {
	s.scope.Every(period, func(context.Context) {
		step()
		metrics.TicksTotal.WithLabelValues(panel).Inc()
	})
}

type runner interface {
	Run(ctx context.Context) error
}

func (s *Session) bridge(b runner) {
	s.scope.Go(func(ctx context.Context) {
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error().Err(err).Msg("refresh bridge stopped")
		}
	})
}

func (s *Session) send(f Frame) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.emit(f)
}

// watch streams every snapshot of store to the session's emit function.
func watch[T any, V any](s *Session, panel string, store *live.Store[T], render func(live.Snapshot[T]) V) {
	s.closers = append(s.closers, store.Close)
	s.scope.Go(func(ctx context.Context) {
		for snap := range store.Watch(ctx) {
			if ctx.Err() != nil {
				return
			}
			s.send(Frame{Panel: panel, Version: snap.Version, Data: render(snap)})
		}
	})
}

func withDefaults(o Options) Options {
	d := DefaultPeriods()
	if o.Periods.GPS <= 0 {
		o.Periods.GPS = d.GPS
	}
	if o.Periods.AmbulanceETA <= 0 {
		o.Periods.AmbulanceETA = d.AmbulanceETA
	}
	if o.Periods.PatientETA <= 0 {
		o.Periods.PatientETA = d.PatientETA
	}
	if o.Periods.Notifications <= 0 {
		o.Periods.Notifications = d.Notifications
	}
	if o.Rand == nil {
		o.Rand = simulation.NewRand()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
