// Package sitesync mirrors the four content collections into an
// always-available in-memory read model. Each live subscription replaces
// its collection wholesale on every snapshot; a failed or empty
// subscription substitutes the bundled defaults for that collection alone,
// so the public pages render something sensible no matter what the remote
// store is doing.
package sitesync

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/floorspaceke/sitecontent/catalog"
	"github.com/floorspaceke/sitecontent/store"
)

// collState tracks where one subscription sits in its
// connecting -> synced <-> fallback lifecycle.
type collState int

const (
	stateConnecting collState = iota
	stateSynced
	stateFallback
)

// SiteData is a point-in-time copy of the synchronized view state.
type SiteData struct {
	Config       catalog.SiteConfig
	Products     []catalog.Product
	Testimonials []catalog.Testimonial
	Gallery      []catalog.GalleryItem

	// Loaded reports that every subscription has delivered its first
	// snapshot or error. Consumers must still tolerate default/empty
	// content at any time, not only before Loaded.
	Loaded bool
	// Degraded reports that at least one subscription currently sits in
	// fallback, serving bundled defaults instead of live data.
	Degraded bool
}

// Synchronizer owns the four subscriptions and the mirrored state.
type Synchronizer struct {
	store  store.Store
	cols   store.Collections
	logger *slog.Logger

	mu           sync.RWMutex
	config       *catalog.SiteConfig
	products     []catalog.Product
	testimonials []catalog.Testimonial
	gallery      []catalog.GalleryItem
	states       [4]collState

	notify chan struct{}

	cancel context.CancelFunc
	eg     *errgroup.Group
	once   sync.Once
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) { s.logger = l }
}

// WithCollections overrides the watched store locations.
func WithCollections(c store.Collections) Option {
	return func(s *Synchronizer) { s.cols = c }
}

// Indices into Synchronizer.states.
const (
	slotConfig = iota
	slotProducts
	slotTestimonials
	slotGallery
)

// New creates a Synchronizer over the given store. Call Start to open the
// subscriptions and Close to release them.
func New(st store.Store, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:  st,
		cols:   store.DefaultCollections(),
		logger: slog.Default(),
		notify: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens all four subscriptions. The watch loops run until Close or
// until ctx is cancelled; subscription errors are absorbed into fallback
// state, never returned.
func (s *Synchronizer) Start(ctx context.Context) {
	s.once.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		s.eg, ctx = errgroup.WithContext(ctx)

		s.eg.Go(func() error { s.runConfig(ctx); return nil })
		s.eg.Go(func() error { s.runProducts(ctx); return nil })
		s.eg.Go(func() error { s.runTestimonials(ctx); return nil })
		s.eg.Go(func() error { s.runGallery(ctx); return nil })
		s.logger.Info("Site data synchronizer started.",
			"products", s.cols.Products,
			"testimonials", s.cols.Testimonials,
			"gallery", s.cols.Gallery,
			"config", s.cols.Config+"/"+s.cols.ConfigDocID,
		)
	})
}

// Close cancels and waits for all four watch loops together. Safe to call
// on every exit path, including before Start.
func (s *Synchronizer) Close() error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	return s.eg.Wait()
}

// Snapshot returns a copy of the current view state. When no config
// document has been seen, the returned config is synthesized from the
// bundled defaults at read time; nothing is written back to the store.
func (s *Synchronizer) Snapshot() SiteData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := SiteData{
		Products:     append([]catalog.Product(nil), s.products...),
		Testimonials: append([]catalog.Testimonial(nil), s.testimonials...),
		Gallery:      append([]catalog.GalleryItem(nil), s.gallery...),
		Loaded:       true,
	}
	if s.config != nil {
		data.Config = *s.config
	} else {
		data.Config = catalog.DefaultSiteConfig()
	}
	for _, st := range s.states {
		if st == stateConnecting {
			data.Loaded = false
		}
		if st == stateFallback {
			data.Degraded = true
		}
	}
	return data
}

// Updates returns a channel that receives a coalesced signal whenever the
// view state changes. Consumers re-read Snapshot on each signal.
func (s *Synchronizer) Updates() <-chan struct{} {
	return s.notify
}

func (s *Synchronizer) runConfig(ctx context.Context) {
	for ev := range s.store.WatchDocument(ctx, s.cols.Config, s.cols.ConfigDocID) {
		if ev.Err != nil {
			s.logger.Warn("Config subscription failed. Using bundled defaults.", "error", ev.Err)
			s.setConfig(nil, stateFallback)
			return
		}
		if ev.Doc == nil {
			// Missing singleton: defaults are merged lazily in Snapshot.
			s.setConfig(nil, stateFallback)
			continue
		}
		cfg := catalog.SiteConfigFromFields(ev.Doc.Fields)
		s.setConfig(&cfg, stateSynced)
	}
}

func (s *Synchronizer) runProducts(ctx context.Context) {
	for ev := range s.store.WatchCollection(ctx, s.cols.Products) {
		if ev.Err != nil {
			s.logger.Warn("Products subscription failed. Using bundled defaults.", "error", ev.Err)
			s.setProducts(catalog.DefaultProducts(), stateFallback)
			return
		}
		if len(ev.Docs) == 0 {
			s.setProducts(catalog.DefaultProducts(), stateFallback)
			continue
		}
		items := make([]catalog.Product, 0, len(ev.Docs))
		for _, d := range ev.Docs {
			items = append(items, catalog.ProductFromFields(d.ID, d.Fields))
		}
		s.setProducts(items, stateSynced)
	}
}

func (s *Synchronizer) runTestimonials(ctx context.Context) {
	for ev := range s.store.WatchCollection(ctx, s.cols.Testimonials) {
		if ev.Err != nil {
			s.logger.Warn("Testimonials subscription failed. Using bundled defaults.", "error", ev.Err)
			s.setTestimonials(catalog.DefaultTestimonials(), stateFallback)
			return
		}
		if len(ev.Docs) == 0 {
			s.setTestimonials(catalog.DefaultTestimonials(), stateFallback)
			continue
		}
		items := make([]catalog.Testimonial, 0, len(ev.Docs))
		for _, d := range ev.Docs {
			items = append(items, catalog.TestimonialFromFields(d.ID, d.Fields))
		}
		s.setTestimonials(items, stateSynced)
	}
}

func (s *Synchronizer) runGallery(ctx context.Context) {
	for ev := range s.store.WatchCollection(ctx, s.cols.Gallery) {
		if ev.Err != nil {
			s.logger.Warn("Gallery subscription failed. Using bundled defaults.", "error", ev.Err)
			s.setGallery(catalog.DefaultGallery(), stateFallback)
			return
		}
		if len(ev.Docs) == 0 {
			s.setGallery(catalog.DefaultGallery(), stateFallback)
			continue
		}
		items := make([]catalog.GalleryItem, 0, len(ev.Docs))
		for _, d := range ev.Docs {
			items = append(items, catalog.GalleryItemFromFields(d.ID, d.Fields))
		}
		s.setGallery(items, stateSynced)
	}
}

func (s *Synchronizer) setConfig(cfg *catalog.SiteConfig, st collState) {
	s.mu.Lock()
	s.config = cfg
	s.states[slotConfig] = st
	s.mu.Unlock()
	s.signal()
}

func (s *Synchronizer) setProducts(items []catalog.Product, st collState) {
	s.mu.Lock()
	s.products = items
	s.states[slotProducts] = st
	s.mu.Unlock()
	s.signal()
}

func (s *Synchronizer) setTestimonials(items []catalog.Testimonial, st collState) {
	s.mu.Lock()
	s.testimonials = items
	s.states[slotTestimonials] = st
	s.mu.Unlock()
	s.signal()
}

func (s *Synchronizer) setGallery(items []catalog.GalleryItem, st collState) {
	s.mu.Lock()
	s.gallery = items
	s.states[slotGallery] = st
	s.mu.Unlock()
	s.signal()
}

func (s *Synchronizer) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}
