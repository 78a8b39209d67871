// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/catalogus/internal/ingest"
	"github.com/tomtom215/catalogus/internal/models"
)

type fakeSource struct {
	result *ingest.Result
	err    error
	block  chan struct{} // when non-nil, ReadAll waits until closed
}

func (f *fakeSource) ReadAll(ctx context.Context) (*ingest.Result, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

type fakeEnricher struct {
	err error
}

func (f *fakeEnricher) EnrichAll(ctx context.Context, titles []models.RawTitle) ([]models.EnrichedTitle, error) {
	if f.err != nil {
		return nil, f.err
	}
	enriched := make([]models.EnrichedTitle, len(titles))
	for i, raw := range titles {
		enriched[i] = models.EnrichedTitle{RawTitle: raw}
	}
	return enriched, nil
}

type fakeStore struct {
	mu     sync.Mutex
	stored []models.EnrichedTitle
	err    error
}

func (f *fakeStore) ReplaceTitles(ctx context.Context, titles []models.EnrichedTitle) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.stored = titles
	f.mu.Unlock()
	return nil
}

func rawTitles(ids ...string) []models.RawTitle {
	titles := make([]models.RawTitle, len(ids))
	for i, id := range ids {
		titles[i] = models.RawTitle{ShowID: id, Title: "t-" + id, Type: "Movie"}
	}
	return titles
}

func TestRunnerRun(t *testing.T) {
	source := &fakeSource{result: &ingest.Result{Titles: rawTitles("s1", "s2", "s3"), Skipped: 2}}
	store := &fakeStore{}
	runner := NewRunner(source, &fakeEnricher{}, store)

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.RunID == "" {
		t.Error("RunID is empty")
	}
	if stats.Ingested != 3 || stats.Enriched != 3 || stats.Written != 3 {
		t.Errorf("counts = %d/%d/%d, want 3/3/3", stats.Ingested, stats.Enriched, stats.Written)
	}
	if stats.Failed != 2 {
		t.Errorf("Failed = %d, want 2", stats.Failed)
	}
	if stats.EndTime.Before(stats.StartTime) {
		t.Errorf("EndTime %v before StartTime %v", stats.EndTime, stats.StartTime)
	}

	if len(store.stored) != 3 {
		t.Fatalf("stored %d titles, want 3", len(store.stored))
	}
	for _, title := range store.stored {
		if title.RunID != stats.RunID {
			t.Errorf("title %s has run_id %q, want %q", title.ShowID, title.RunID, stats.RunID)
		}
		if title.EnrichedAt.IsZero() {
			t.Errorf("title %s has zero EnrichedAt", title.ShowID)
		}
	}
}

func TestRunnerLastRun(t *testing.T) {
	source := &fakeSource{result: &ingest.Result{Titles: rawTitles("s1")}}
	runner := NewRunner(source, &fakeEnricher{}, &fakeStore{})

	if runner.LastRun() != nil {
		t.Error("LastRun() != nil before any run")
	}

	stats, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last := runner.LastRun()
	if last == nil {
		t.Fatal("LastRun() = nil after run")
	}
	if last.RunID != stats.RunID {
		t.Errorf("LastRun().RunID = %q, want %q", last.RunID, stats.RunID)
	}

	// Returned stats are a copy, not the retained record
	last.Written = 99
	if runner.LastRun().Written == 99 {
		t.Error("LastRun() returned shared state")
	}
}

func TestRunnerStageFailures(t *testing.T) {
	sourceErr := errors.New("source down")
	enrichErr := errors.New("enrich broke")
	storeErr := errors.New("store full")

	tests := []struct {
		name    string
		source  *fakeSource
		enrich  *fakeEnricher
		store   *fakeStore
		wantErr error
	}{
		{
			name:    "ingest failure",
			source:  &fakeSource{err: sourceErr},
			enrich:  &fakeEnricher{},
			store:   &fakeStore{},
			wantErr: sourceErr,
		},
		{
			name:    "enrich failure",
			source:  &fakeSource{result: &ingest.Result{Titles: rawTitles("s1")}},
			enrich:  &fakeEnricher{err: enrichErr},
			store:   &fakeStore{},
			wantErr: enrichErr,
		},
		{
			name:    "store failure",
			source:  &fakeSource{result: &ingest.Result{Titles: rawTitles("s1")}},
			enrich:  &fakeEnricher{},
			store:   &fakeStore{err: storeErr},
			wantErr: storeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(tt.source, tt.enrich, tt.store)

			stats, err := runner.Run(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if stats == nil {
				t.Fatal("Run() stats = nil, want partial stats on failure")
			}
			if stats.Written != 0 {
				t.Errorf("Written = %d, want 0", stats.Written)
			}

			// A failed run still releases the pipeline
			if runner.IsRunning() {
				t.Error("IsRunning() = true after failed run")
			}
			if runner.LastRun() == nil {
				t.Error("LastRun() = nil, failed runs should be recorded")
			}
		})
	}
}

func TestRunnerConcurrentRunRejected(t *testing.T) {
	block := make(chan struct{})
	source := &fakeSource{
		result: &ingest.Result{Titles: rawTitles("s1")},
		block:  block,
	}
	runner := NewRunner(source, &fakeEnricher{}, &fakeStore{})

	done := make(chan error, 1)
	go func() {
		_, err := runner.Run(context.Background())
		done <- err
	}()

	// Wait for the first run to take the slot
	deadline := time.After(2 * time.Second)
	for !runner.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("first run never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := runner.Run(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("concurrent Run() error = %v, want ErrRunInProgress", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if runner.IsRunning() {
		t.Error("IsRunning() = true after run finished")
	}
}

func TestRunnerStop(t *testing.T) {
	source := &fakeSource{
		result: &ingest.Result{Titles: rawTitles("s1")},
		block:  make(chan struct{}),
	}
	runner := NewRunner(source, &fakeEnricher{}, &fakeStore{})

	done := make(chan error, 1)
	go func() {
		_, err := runner.Run(context.Background())
		done <- err
	}()

	deadline := time.After(2 * time.Second)
	for !runner.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("run never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	runner.Stop()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled after Stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after Stop")
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	source := &fakeSource{
		result: &ingest.Result{Titles: rawTitles("s1")},
		block:  make(chan struct{}),
	}
	runner := NewRunner(source, &fakeEnricher{}, &fakeStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
