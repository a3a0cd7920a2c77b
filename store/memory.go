package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Memory is an in-memory Store with working watch fan-out. It backs tests
// and local development; collection-level failures can be injected to
// exercise fallback paths.
//
// Snapshot broadcasts are serialized, so watch consumers must drain their
// channels from their own goroutines and must not call back into the store
// synchronously from a watch handler.
type Memory struct {
	mu     sync.Mutex
	data   map[string]map[string]map[string]any
	failed map[string]error

	// broadcastMu keeps snapshot delivery in mutation order.
	broadcastMu sync.Mutex

	colWatchers map[string][]*colWatcher
	docWatchers map[string][]*docWatcher
}

type colWatcher struct {
	ctx context.Context
	ch  chan CollectionEvent
}

type docWatcher struct {
	ctx context.Context
	id  string
	ch  chan DocumentEvent
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:        make(map[string]map[string]map[string]any),
		failed:      make(map[string]error),
		colWatchers: make(map[string][]*colWatcher),
		docWatchers: make(map[string][]*docWatcher),
	}
}

// Fail marks a collection as denied: current and future watches on it
// receive err and close, mimicking a security-rule rejection. Point reads
// and writes fail with the same error.
func (m *Memory) Fail(collection string, err error) {
	m.broadcastMu.Lock()
	defer m.broadcastMu.Unlock()
	m.mu.Lock()
	m.failed[collection] = err
	cws := m.colWatchers[collection]
	dws := m.docWatchers[collection]
	m.colWatchers[collection] = nil
	m.docWatchers[collection] = nil
	m.mu.Unlock()

	for _, w := range cws {
		send(w.ctx, w.ch, CollectionEvent{Err: err})
		close(w.ch)
	}
	for _, w := range dws {
		send(w.ctx, w.ch, DocumentEvent{Err: err})
		close(w.ch)
	}
}

func (m *Memory) WatchCollection(ctx context.Context, collection string) <-chan CollectionEvent {
	ch := make(chan CollectionEvent, 1)
	m.broadcastMu.Lock()
	defer m.broadcastMu.Unlock()
	m.mu.Lock()
	if err := m.failed[collection]; err != nil {
		m.mu.Unlock()
		ch <- CollectionEvent{Err: err}
		close(ch)
		return ch
	}
	w := &colWatcher{ctx: ctx, ch: ch}
	m.colWatchers[collection] = append(m.colWatchers[collection], w)
	docs := m.snapshotLocked(collection)
	m.mu.Unlock()

	ch <- CollectionEvent{Docs: docs}
	go m.reapCol(ctx, collection, w)
	return ch
}

func (m *Memory) WatchDocument(ctx context.Context, collection, id string) <-chan DocumentEvent {
	ch := make(chan DocumentEvent, 1)
	m.broadcastMu.Lock()
	defer m.broadcastMu.Unlock()
	m.mu.Lock()
	if err := m.failed[collection]; err != nil {
		m.mu.Unlock()
		ch <- DocumentEvent{Err: err}
		close(ch)
		return ch
	}
	w := &docWatcher{ctx: ctx, id: id, ch: ch}
	m.docWatchers[collection] = append(m.docWatchers[collection], w)
	doc := m.docLocked(collection, id)
	m.mu.Unlock()

	ch <- DocumentEvent{Doc: doc}
	go m.reapDoc(ctx, collection, w)
	return ch
}

func (m *Memory) GetAll(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	m.mu.Lock()
	if err := m.failed[collection]; err != nil {
		m.mu.Unlock()
		return nil, err
	}
	docs := m.snapshotLocked(collection)
	m.mu.Unlock()

	if orderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			less := fieldLess(docs[i].Fields[orderBy], docs[j].Fields[orderBy])
			if desc {
				return !less
			}
			return less
		})
	}
	return docs, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failed[collection]; err != nil {
		return Document{}, err
	}
	doc := m.docLocked(collection, id)
	if doc == nil {
		return Document{}, ErrNotFound
	}
	return *doc, nil
}

func (m *Memory) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	if err := m.apply(Write{Collection: collection, ID: id, Fields: fields}); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	return m.apply(Write{Collection: collection, ID: id, Fields: fields, Merge: merge})
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	_, exists := m.data[collection][id]
	m.mu.Unlock()
	if !exists {
		return ErrNotFound
	}
	return m.apply(Write{Collection: collection, ID: id, Fields: fields, Merge: true})
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.broadcastMu.Lock()
	defer m.broadcastMu.Unlock()
	m.mu.Lock()
	if err := m.failed[collection]; err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.data[collection], id)
	m.mu.Unlock()
	m.broadcast(collection, id)
	return nil
}

func (m *Memory) BatchWrite(ctx context.Context, writes []Write) error {
	m.broadcastMu.Lock()
	defer m.broadcastMu.Unlock()
	m.mu.Lock()
	for _, w := range writes {
		if err := m.failed[w.Collection]; err != nil {
			m.mu.Unlock()
			return err
		}
	}
	touched := map[string]map[string]bool{}
	for _, w := range writes {
		id := w.ID
		if id == "" {
			id = uuid.NewString()
		}
		m.writeLocked(w.Collection, id, w.Fields, w.Merge)
		if touched[w.Collection] == nil {
			touched[w.Collection] = map[string]bool{}
		}
		touched[w.Collection][id] = true
	}
	m.mu.Unlock()
	for col, ids := range touched {
		for id := range ids {
			m.broadcast(col, id)
		}
	}
	return nil
}

func (m *Memory) apply(w Write) error {
	m.broadcastMu.Lock()
	defer m.broadcastMu.Unlock()
	m.mu.Lock()
	if err := m.failed[w.Collection]; err != nil {
		m.mu.Unlock()
		return err
	}
	m.writeLocked(w.Collection, w.ID, w.Fields, w.Merge)
	m.mu.Unlock()
	m.broadcast(w.Collection, w.ID)
	return nil
}

func (m *Memory) writeLocked(collection, id string, fields map[string]any, merge bool) {
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]map[string]any)
	}
	dst := m.data[collection][id]
	if dst == nil || !merge {
		dst = make(map[string]any, len(fields))
		m.data[collection][id] = dst
	}
	now := time.Now().UTC()
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			dst[k] = now
			continue
		}
		dst[k] = v
	}
}

// broadcast redelivers the collection snapshot and the touched document to
// every live watcher, in mutation order. Callers hold broadcastMu.
func (m *Memory) broadcast(collection, id string) {
	m.mu.Lock()
	docs := m.snapshotLocked(collection)
	doc := m.docLocked(collection, id)
	cws := append([]*colWatcher(nil), m.colWatchers[collection]...)
	dws := append([]*docWatcher(nil), m.docWatchers[collection]...)
	m.mu.Unlock()

	for _, w := range cws {
		send(w.ctx, w.ch, CollectionEvent{Docs: docs})
	}
	for _, w := range dws {
		if w.id == id {
			send(w.ctx, w.ch, DocumentEvent{Doc: doc})
		}
	}
}

func (m *Memory) snapshotLocked(collection string) []Document {
	docs := make([]Document, 0, len(m.data[collection]))
	for id, fields := range m.data[collection] {
		docs = append(docs, Document{ID: id, Fields: cloneFields(fields)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

func (m *Memory) docLocked(collection, id string) *Document {
	fields, ok := m.data[collection][id]
	if !ok {
		return nil
	}
	return &Document{ID: id, Fields: cloneFields(fields)}
}

func (m *Memory) reapCol(ctx context.Context, collection string, w *colWatcher) {
	<-ctx.Done()
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.colWatchers[collection]
	for i, cand := range ws {
		if cand == w {
			m.colWatchers[collection] = append(ws[:i], ws[i+1:]...)
			break
		}
	}
}

func (m *Memory) reapDoc(ctx context.Context, collection string, w *docWatcher) {
	<-ctx.Done()
	m.mu.Lock()
	defer m.mu.Unlock()
	ws := m.docWatchers[collection]
	for i, cand := range ws {
		if cand == w {
			m.docWatchers[collection] = append(ws[:i], ws[i+1:]...)
			break
		}
	}
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// fieldLess orders two schemaless field values: timestamps chronologically,
// everything else by string form.
func fieldLess(a, b any) bool {
	ta, aok := a.(time.Time)
	tb, bok := b.(time.Time)
	if aok && bok {
		return ta.Before(tb)
	}
	return cast.ToString(a) < cast.ToString(b)
}
