// Package syncer persists workbench mutations to the claims backend. Local
// state is updated first (optimistic), then each change is pushed from a
// single FIFO worker so responses are applied in arrival order. A failed
// push is surfaced to the UI but never rolls the local mutation back.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
	"github.com/JasonMadeSomething/claimbench/internal/workbench"
)

// ErrRemoteFailure marks persistence errors that happened after the local
// mutation was already applied.
var ErrRemoteFailure = errors.New("remote failure")

// RemoteError reports one change that could not be persisted.
type RemoteError struct {
	Change workbench.Change
	Err    error
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Change.Op, e.Err)
}

func (e RemoteError) Unwrap() error { return e.Err }

func (e RemoteError) Is(target error) bool { return target == ErrRemoteFailure }

// claimsAPI is the subset of backend.Client the adapter requires.
type claimsAPI interface {
	CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, item domain.Item) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
	AddItemPhoto(ctx context.Context, itemID, photoID string) (*domain.Item, error)
	RemoveItemPhoto(ctx context.Context, itemID, photoID string) (*domain.Item, error)
	CreateRoom(ctx context.Context, claimID string, room domain.Room) (*domain.Room, error)
	UpdateRoom(ctx context.Context, claimID string, room domain.Room) (*domain.Room, error)
	DeleteRoom(ctx context.Context, claimID, roomID string) error
	UpdateFile(ctx context.Context, photo domain.Photo) (*domain.Photo, error)
}

// reconciler is the subset of workbench.Workbench the adapter writes back to.
type reconciler interface {
	ReconcileItem(domain.Item)
	ReconcileRoom(domain.Room)
	ReconcilePhoto(domain.Photo)
}

const queueSize = 256

type Adapter struct {
	api      claimsAPI
	bench    reconciler
	logger   *slog.Logger
	queue    chan workbench.Change
	failures chan RemoteError
	done     chan struct{}
}

// New starts the adapter's worker goroutine. Callers must Close when done.
func New(api claimsAPI, bench reconciler, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Adapter{
		api:      api,
		bench:    bench,
		logger:   logger,
		queue:    make(chan workbench.Change, queueSize),
		failures: make(chan RemoteError, 16),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Apply enqueues a change for persistence. It implements
// workbench.ChangeSink and never blocks the mutating caller; if the queue is
// saturated the change is reported as a remote failure instead.
func (a *Adapter) Apply(ch workbench.Change) {
	select {
	case a.queue <- ch:
	default:
		a.logger.Error("sync queue full, dropping change", "op", ch.Op)
		a.report(RemoteError{Change: ch, Err: errors.New("sync queue full")})
	}
}

// Failures delivers persistence errors for user-visible messaging. The local
// optimistic state has already been applied and is retained.
func (a *Adapter) Failures() <-chan RemoteError {
	return a.failures
}

// Close stops accepting changes, drains the queue, and closes Failures.
func (a *Adapter) Close() {
	close(a.queue)
	<-a.done
	close(a.failures)
}

func (a *Adapter) run() {
	defer close(a.done)
	for ch := range a.queue {
		if err := a.persist(context.Background(), ch); err != nil {
			a.logger.Error("sync failed", "op", ch.Op, "error", err)
			a.report(RemoteError{Change: ch, Err: err})
			continue
		}
		a.logger.Debug("change persisted", "op", ch.Op)
	}
}

func (a *Adapter) report(re RemoteError) {
	select {
	case a.failures <- re:
	default:
		a.logger.Warn("failure channel full, dropping report", "op", re.Change.Op)
	}
}

// persist maps one change onto the claims API and reconciles canonical
// server fields on success.
func (a *Adapter) persist(ctx context.Context, ch workbench.Change) error {
	switch ch.Op {
	case workbench.OpItemCreated:
		out, err := a.api.CreateItem(ctx, *ch.Item)
		if err != nil {
			return err
		}
		a.bench.ReconcileItem(*out)
	case workbench.OpItemUpdated:
		out, err := a.api.UpdateItem(ctx, *ch.Item)
		if err != nil {
			return err
		}
		a.bench.ReconcileItem(*out)
	case workbench.OpItemDeleted:
		return a.api.DeleteItem(ctx, ch.ItemID)
	case workbench.OpPhotoAdded:
		out, err := a.api.AddItemPhoto(ctx, ch.ItemID, ch.PhotoID)
		if err != nil {
			return err
		}
		a.bench.ReconcileItem(*out)
	case workbench.OpPhotoRemoved:
		out, err := a.api.RemoveItemPhoto(ctx, ch.ItemID, ch.PhotoID)
		if err != nil {
			return err
		}
		a.bench.ReconcileItem(*out)
	case workbench.OpPhotoUpdated:
		out, err := a.api.UpdateFile(ctx, *ch.Photo)
		if err != nil {
			return err
		}
		a.bench.ReconcilePhoto(*out)
	case workbench.OpRoomCreated:
		out, err := a.api.CreateRoom(ctx, ch.ClaimID, *ch.Room)
		if err != nil {
			return err
		}
		a.bench.ReconcileRoom(*out)
	case workbench.OpRoomUpdated:
		out, err := a.api.UpdateRoom(ctx, ch.ClaimID, *ch.Room)
		if err != nil {
			return err
		}
		a.bench.ReconcileRoom(*out)
	case workbench.OpRoomDeleted:
		return a.api.DeleteRoom(ctx, ch.ClaimID, ch.RoomID)
	default:
		return fmt.Errorf("unknown change op %q", ch.Op)
	}
	return nil
}
