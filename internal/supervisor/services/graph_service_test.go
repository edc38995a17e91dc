// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/filmgraph/internal/graph"
)

type fakeGraphEngine struct {
	mu          sync.Mutex
	builds      int
	invalidated int
	err         error
}

func (f *fakeGraphEngine) BuildGraph(context.Context) (*graph.Graph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds++
	if f.err != nil {
		return nil, f.err
	}
	g := graph.New()
	g.AddEdge(graph.User(1), graph.Film(1), graph.EdgeAttrs{Interaction: graph.InteractionRated})
	return g, nil
}

func (f *fakeGraphEngine) InvalidateCache() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

func (f *fakeGraphEngine) counts() (builds, invalidated int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds, f.invalidated
}

func (f *fakeGraphEngine) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeVersion struct{ v atomic.Int64 }

func (f *fakeVersion) DataVersion() int64 { return f.v.Load() }

func TestGraphService_Interface(t *testing.T) {
	var _ suture.Service = (*GraphService)(nil)
}

func TestNewGraphService_Defaults(t *testing.T) {
	svc := NewGraphService(&fakeGraphEngine{}, &fakeVersion{}, GraphServiceConfig{}, zerolog.Nop())
	if svc.config.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %v, want 30s", svc.config.PollInterval)
	}
	if svc.config.BuildTimeout != time.Minute {
		t.Errorf("build timeout = %v, want 1m", svc.config.BuildTimeout)
	}
	if svc.String() != "graph-service" {
		t.Errorf("name = %q", svc.String())
	}
}

func TestGraphService_Poll(t *testing.T) {
	engine := &fakeGraphEngine{}
	versions := &fakeVersion{}
	svc := NewGraphService(engine, versions, GraphServiceConfig{}, zerolog.Nop())
	ctx := context.Background()

	svc.poll(ctx)
	if b, inv := engine.counts(); b != 1 || inv != 0 {
		t.Fatalf("first poll: builds=%d invalidated=%d, want 1/0", b, inv)
	}

	svc.poll(ctx)
	if b, _ := engine.counts(); b != 1 {
		t.Errorf("unchanged version rebuilt the graph: builds=%d", b)
	}

	versions.v.Store(3)
	svc.poll(ctx)
	if b, inv := engine.counts(); b != 2 || inv != 1 {
		t.Errorf("after version change: builds=%d invalidated=%d, want 2/1", b, inv)
	}
}

func TestGraphService_RetriesFailedRefresh(t *testing.T) {
	engine := &fakeGraphEngine{}
	versions := &fakeVersion{}
	svc := NewGraphService(engine, versions, GraphServiceConfig{}, zerolog.Nop())
	ctx := context.Background()

	svc.poll(ctx)

	engine.setErr(errors.New("database locked"))
	versions.v.Store(1)
	svc.poll(ctx)
	if _, inv := engine.counts(); inv != 0 {
		t.Errorf("failed refresh invalidated the cache")
	}

	engine.setErr(nil)
	svc.poll(ctx)
	if b, inv := engine.counts(); b != 3 || inv != 1 {
		t.Errorf("retry: builds=%d invalidated=%d, want 3/1", b, inv)
	}
	if svc.lastVersion != 1 {
		t.Errorf("lastVersion = %d, want 1", svc.lastVersion)
	}
}

func TestGraphService_Serve(t *testing.T) {
	engine := &fakeGraphEngine{}
	svc := NewGraphService(engine, &fakeVersion{}, GraphServiceConfig{
		RefreshOnStartup: true,
		PollInterval:     10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if b, _ := engine.counts(); b != 1 {
		t.Errorf("builds = %d, want 1 (startup only, version unchanged)", b)
	}
}
