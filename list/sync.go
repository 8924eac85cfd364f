package list

import (
	"context"

	"github.com/anisan-cli/anisync/fault"
	"github.com/samber/lo"
)

// Report summarizes one Sync.
type Report struct {
	// Pushed counts queued entries the provider accepted.
	Pushed int
	// Dropped counts queued entries whose push failed. They are not retried.
	Dropped int
	// Pulled is the size of the list after the final pull.
	Pulled int
}

// Sync pushes the queued entries to the provider and replaces the cache with the remote list.
//
// Each queued entry is sent at most once: a failed push is logged, counted as dropped and
// removed from the queue. An entry missing remotely is added and then updated; the update is
// issued even when the add fails. Errors of the two pulls are returned and leave the cache as it was.
// A Sync started while another one runs fails with fault.ErrSyncInProgress.
func (l *List[E]) Sync(ctx context.Context) (Report, error) {
	if !l.syncing.CompareAndSwap(false, true) {
		return Report{}, fault.ErrSyncInProgress
	}
	defer l.syncing.Store(false)

	var report Report

	l.log.Info("pulling list")
	remote, err := l.backend.pull(ctx)
	if err != nil {
		return report, err
	}

	listed := make(map[int]struct{}, len(remote))
	for _, e := range remote {
		listed[e.Key().ID] = struct{}{}
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		e, ok := l.next()
		if !ok {
			break
		}

		_, isRemote := listed[e.Key().ID]
		if err := l.push(ctx, e, isRemote); err != nil {
			if ctx.Err() != nil {
				return report, err
			}
			report.Dropped++
			l.log.
				WithError(err).
				WithField("id", e.Key().ID).
				Warnf("dropped change to %q", e.Base().Title)
			continue
		}

		report.Pushed++
	}

	remote, err = l.backend.pull(ctx)
	if err != nil {
		return report, err
	}

	l.replace(remote)
	report.Pulled = len(remote)

	l.log.Infof("synced: %d pushed, %d dropped, %d pulled", report.Pushed, report.Dropped, report.Pulled)
	return report, l.Save()
}

// next pops the oldest queued entry that is still cached.
func (l *List[E]) next() (e E, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		id, queued := l.pending.Pop()
		if !queued {
			return e, false
		}
		if e, ok = l.entries[id]; ok {
			return e, true
		}
	}
}

func (l *List[E]) push(ctx context.Context, e E, isRemote bool) error {
	status := e.Base().Status
	var addErr error
	if status.Listed() && !isRemote {
		addErr = l.backend.add(ctx, e.Key().ID, status)
	}

	// Update is sent even after a failed add; the add error wins.
	updated, err := l.backend.update(ctx, e)
	if addErr != nil {
		return addErr
	}
	if err != nil {
		return err
	}
	if !updated && status.Listed() {
		return fault.New(fault.Rejected, l.backend.ID(), "%d was not updated", e.Key().ID)
	}
	return nil
}

// replace overwrites the cache with the remote list. Cached entries keep their identity:
// an entry present on both sides is updated in place.
func (l *List[E]) replace(remote []E) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make(map[int]E, len(remote))
	for _, e := range remote {
		id := e.Key().ID
		if existing, ok := l.entries[id]; ok && existing.Replace(e) == nil {
			e = existing
		}
		entries[id] = e
	}
	l.entries = entries

	// changes queued during the drain survive only if their entry does
	queued := lo.Filter(l.pending.Items(), func(id int, _ int) bool {
		_, ok := entries[id]
		return ok
	})
	l.pending.Clear()
	for _, id := range queued {
		l.pending.Push(id)
	}
}
