package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spindleapp/spindle-server/internal/domain"
)

// CancelFunc detaches a watch. It is idempotent, and once it returns the
// watch's callback will never be invoked again. Must not be called from
// inside the watch's own callback: it waits for any in-flight delivery to
// finish and would deadlock.
type CancelFunc func()

// AlbumsSnapshotFunc receives the full, sorted result set of a collection
// watch. It is called once on registration and again after every committed
// change to the album collection.
type AlbumsSnapshotFunc func(albums []*domain.Album)

// watchRegistry tracks active watches and fans change notifications out to
// them. Each watch owns a goroutine that materializes snapshots, so slow
// consumers never block the write path; intermediate states may coalesce but
// the final state is always delivered.
type watchRegistry struct {
	store  *Store
	logger *slog.Logger

	mu      sync.Mutex
	nextID  uint64
	watches map[uint64]*watch
}

// watch is a single registered subscription.
type watch struct {
	// albumID is set for single-document watches, empty for collection watches.
	albumID string

	// signal coalesces change notifications. Capacity one: a pending signal
	// already guarantees the latest state will be materialized.
	signal chan struct{}
	done   chan struct{}

	// deliverMu serializes deliveries and lets cancel wait out an in-flight
	// callback. cancelled is checked under this mutex before every delivery.
	deliverMu sync.Mutex
	cancelled bool

	cancelOnce sync.Once

	deliver func()
}

func newWatchRegistry(store *Store, logger *slog.Logger) *watchRegistry {
	return &watchRegistry{
		store:   store,
		logger:  logger,
		watches: make(map[uint64]*watch),
	}
}

// register installs a watch, starts its delivery loop, and returns its cancel
// function. The loop delivers one snapshot immediately, then once per signal.
func (r *watchRegistry) register(w *watch) CancelFunc {
	r.mu.Lock()
	r.nextID++
	watchID := r.nextID
	r.watches[watchID] = w
	r.mu.Unlock()

	go func() {
		w.runDelivery()
		for {
			select {
			case <-w.done:
				return
			case <-w.signal:
				w.runDelivery()
			}
		}
	}()

	return func() { r.cancel(watchID, w) }
}

func (r *watchRegistry) cancel(watchID uint64, w *watch) {
	w.cancelOnce.Do(func() {
		// Taking deliverMu waits out any callback currently executing and
		// flips the flag the delivery loop checks, so no callback can start
		// after this function returns.
		w.deliverMu.Lock()
		w.cancelled = true
		close(w.done)
		w.deliverMu.Unlock()

		r.mu.Lock()
		delete(r.watches, watchID)
		r.mu.Unlock()
	})
}

// runDelivery materializes the current state and invokes the callback unless
// the watch has been cancelled.
func (w *watch) runDelivery() {
	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()
	if w.cancelled {
		return
	}
	w.deliver()
}

// notifyAlbum wakes every watch affected by a change to the given album.
// Collection watches always wake: any album change can move a document in or
// out of a filtered, sorted result set.
func (r *watchRegistry) notifyAlbum(albumID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.watches {
		if w.albumID != "" && w.albumID != albumID {
			continue
		}
		select {
		case w.signal <- struct{}{}:
		default:
			// A signal is already pending; the next delivery reads fresh state.
		}
	}
}

// closeAll cancels every registered watch. Called on store shutdown.
func (r *watchRegistry) closeAll() {
	r.mu.Lock()
	remaining := make(map[uint64]*watch, len(r.watches))
	for id, w := range r.watches {
		remaining[id] = w
	}
	r.mu.Unlock()

	for id, w := range remaining {
		r.cancel(id, w)
	}
}

// WatchAlbums registers a collection watch for the given query. The callback
// receives the complete sorted result set: immediately on registration, then
// after every committed change. Callbacks for one watch never run
// concurrently and always arrive in commit order; bursts of changes may
// collapse into a single delivery of the latest state.
func (s *Store) WatchAlbums(query AlbumQuery, fn AlbumsSnapshotFunc) (CancelFunc, error) {
	if fn == nil {
		if s.logger != nil {
			s.logger.Error("rejected album collection watch with nil callback")
		}
		return nil, fmt.Errorf("watch callback is required")
	}

	w := &watch{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	w.deliver = func() {
		albums, err := s.QueryAlbums(context.Background(), query)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("album watch snapshot failed", "error", err)
			}
			return
		}
		fn(albums)
	}

	return s.watches.register(w), nil
}

// AlbumSnapshotFunc receives the current state of a single watched album.
// found is false when the album does not exist, which lets subscribers to a
// missing document render an explicit not-found state instead of hanging.
type AlbumSnapshotFunc func(album *domain.Album, found bool)

// WatchAlbum registers a single-document watch. The callback fires
// immediately with the current state (or not-found) and again after every
// committed change to that album.
func (s *Store) WatchAlbum(albumID string, fn AlbumSnapshotFunc) (CancelFunc, error) {
	if albumID == "" {
		return nil, fmt.Errorf("album ID is required")
	}
	if fn == nil {
		if s.logger != nil {
			s.logger.Error("rejected album watch with nil callback", "album_id", albumID)
		}
		return nil, fmt.Errorf("watch callback is required")
	}

	w := &watch{
		albumID: albumID,
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.deliver = func() {
		album, err := s.GetAlbum(context.Background(), albumID)
		if err != nil {
			if errors.Is(err, ErrAlbumNotFound) {
				fn(nil, false)
				return
			}
			if s.logger != nil {
				s.logger.Warn("album watch snapshot failed", "album_id", albumID, "error", err)
			}
			return
		}
		fn(album, true)
	}

	return s.watches.register(w), nil
}
