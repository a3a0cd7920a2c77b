// Package store abstracts the remote document database behind an injected
// interface so the synchronizer and admin layer never touch an ambient
// client. Firestore backs production; Memory backs tests and offline use.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the ID.
var ErrNotFound = errors.New("store: document not found")

// Collections names the store locations holding the site's content.
type Collections struct {
	Products     string
	Testimonials string
	Gallery      string
	Config       string
	ConfigDocID  string
}

// DefaultCollections matches the production database layout.
func DefaultCollections() Collections {
	return Collections{
		Products:     "products",
		Testimonials: "testimonials",
		Gallery:      "gallery",
		Config:       "siteConfig",
		ConfigDocID:  "global",
	}
}

// ServerTimestamp is a sentinel field value. Implementations replace it
// with a server-assigned timestamp at write time.
var ServerTimestamp = serverTimestamp{}

type serverTimestamp struct{}

// Document is one record of a collection: its identifier plus the raw,
// schemaless field map.
type Document struct {
	ID     string
	Fields map[string]any
}

// CollectionEvent is one wholesale snapshot of a watched collection. A
// non-nil Err means the subscription failed; the stream closes after it.
type CollectionEvent struct {
	Docs []Document
	Err  error
}

// DocumentEvent is one snapshot of a watched document. Doc is nil while
// the document does not exist. A non-nil Err terminates the stream.
type DocumentEvent struct {
	Doc *Document
	Err error
}

// Write is one entry of an atomic batch. An empty ID requests a generated
// identifier. With Merge set, only the given fields are overwritten.
type Write struct {
	Collection string
	ID         string
	Fields     map[string]any
	Merge      bool
}

// Store is the document database surface this module needs: live
// subscriptions delivering wholesale snapshots, point reads, writes, and
// one atomic multi-document batch for seeding.
//
// Watch channels deliver the current snapshot on open and again on every
// change. They close when ctx is cancelled or after delivering an error
// event; there is no client-side retry.
type Store interface {
	WatchCollection(ctx context.Context, collection string) <-chan CollectionEvent
	WatchDocument(ctx context.Context, collection, id string) <-chan DocumentEvent

	// GetAll reads a full collection ordered by orderBy, newest first
	// when desc is set. An empty orderBy returns store order.
	GetAll(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)

	// Create writes a new document under a generated ID and returns it.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set writes the document, creating it if absent. With merge, fields
	// not present in the map are left untouched.
	Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error
	// Update patches the given fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error

	// BatchWrite applies all writes atomically.
	BatchWrite(ctx context.Context, writes []Write) error
}
