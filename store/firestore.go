package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store over a Cloud Firestore database.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a Store backed by Firestore for the given project.
// An empty credentialsFile falls back to application default credentials.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*Firestore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore store")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// NewFirestoreFromClient wraps an existing client.
func NewFirestoreFromClient(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// Close releases the underlying client.
func (s *Firestore) Close() error {
	return s.client.Close()
}

// WatchCollection streams wholesale snapshots of a collection. The
// Firestore client owns reconnect behavior for transient failures; a
// terminal error (e.g. permission denied) is delivered once and the
// stream closes.
func (s *Firestore) WatchCollection(ctx context.Context, collection string) <-chan CollectionEvent {
	ch := make(chan CollectionEvent, 1)
	it := s.client.Collection(collection).Snapshots(ctx)
	go func() {
		defer close(ch)
		defer it.Stop()
		for {
			qsnap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				send(ctx, ch, CollectionEvent{Err: fmt.Errorf("watch %s: %w", collection, err)})
				return
			}
			snaps, err := qsnap.Documents.GetAll()
			if err != nil {
				send(ctx, ch, CollectionEvent{Err: fmt.Errorf("watch %s: read snapshot: %w", collection, err)})
				return
			}
			docs := make([]Document, 0, len(snaps))
			for _, d := range snaps {
				docs = append(docs, Document{ID: d.Ref.ID, Fields: d.Data()})
			}
			if !send(ctx, ch, CollectionEvent{Docs: docs}) {
				return
			}
		}
	}()
	return ch
}

// WatchDocument streams snapshots of a single document. A snapshot for a
// document that does not exist carries a nil Doc.
func (s *Firestore) WatchDocument(ctx context.Context, collection, id string) <-chan DocumentEvent {
	ch := make(chan DocumentEvent, 1)
	it := s.client.Collection(collection).Doc(id).Snapshots(ctx)
	go func() {
		defer close(ch)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				send(ctx, ch, DocumentEvent{Err: fmt.Errorf("watch %s/%s: %w", collection, id, err)})
				return
			}
			var ev DocumentEvent
			if snap.Exists() {
				ev.Doc = &Document{ID: snap.Ref.ID, Fields: snap.Data()}
			}
			if !send(ctx, ch, ev) {
				return
			}
		}
	}()
	return ch
}

func (s *Firestore) GetAll(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	q := s.client.Collection(collection).Query
	if orderBy != "" {
		dir := firestore.Asc
		if desc {
			dir = firestore.Desc
		}
		q = q.OrderBy(orderBy, dir)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(snaps))
	for _, d := range snaps {
		docs = append(docs, Document{ID: d.Ref.ID, Fields: d.Data()})
	}
	return docs, nil
}

func (s *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *Firestore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, translateSentinels(fields))
	if err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *Firestore) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	ref := s.client.Collection(collection).Doc(id)
	var err error
	if merge {
		_, err = ref.Set(ctx, translateSentinels(fields), firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, translateSentinels(fields))
	}
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Firestore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range translateSentinels(fields) {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Firestore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// BatchWrite applies all writes in a single transaction so seeding either
// lands completely or not at all.
func (s *Firestore) BatchWrite(ctx context.Context, writes []Write) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, w := range writes {
			var ref *firestore.DocumentRef
			if w.ID == "" {
				ref = s.client.Collection(w.Collection).NewDoc()
			} else {
				ref = s.client.Collection(w.Collection).Doc(w.ID)
			}
			fields := translateSentinels(w.Fields)
			if w.Merge {
				if err := tx.Set(ref, fields, firestore.MergeAll); err != nil {
					return err
				}
			} else if err := tx.Set(ref, fields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch write: %w", err)
	}
	return nil
}

// translateSentinels swaps the package sentinel for the Firestore one.
func translateSentinels(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}

// send delivers ev unless ctx is done first; reports whether it was sent.
func send[T any](ctx context.Context, ch chan<- T, ev T) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
