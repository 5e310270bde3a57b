package recordcache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/mohammed-shakir/ongc/internal/cache/keys"
	"github.com/mohammed-shakir/ongc/internal/cache/redisstore"
	"github.com/mohammed-shakir/ongc/internal/core/model"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/store/memstore"
)

func f(v float64) *float64 { return &v }

// countingSource counts LookupOne calls that reach the store.
type countingSource struct {
	store *memstore.Store
	calls int
}

func (c *countingSource) Open(ctx context.Context) (lookup.Handle, error) {
	h, err := c.store.Open(ctx)
	if err != nil {
		return nil, err
	}
	return &countingHandle{Handle: h, c: c}, nil
}

type countingHandle struct {
	lookup.Handle
	c *countingSource
}

func (h *countingHandle) LookupOne(ctx context.Context, id model.Identifier) (*model.Object, error) {
	h.c.calls++
	return h.Handle.LookupOne(ctx, id)
}

func newSource(t *testing.T) *countingSource {
	t.Helper()
	s, err := memstore.New([]model.Object{
		{ID: 1, Name: "NGC0224", Type: model.TypeGalaxy, Messier: "031", RA: f(0.18648), Dec: f(0.72028),
			Constellation: "And", CommonNames: "Andromeda Galaxy"},
	})
	if err != nil {
		t.Fatalf("memstore: %v", err)
	}
	return &countingSource{store: s}
}

func lookupOnce(t *testing.T, src lookup.Source, id model.Identifier) (*model.Object, error) {
	t.Helper()
	h, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()
	return h.LookupOne(context.Background(), id)
}

func TestLRU_SecondLookupServedFromMemory(t *testing.T) {
	next := newSource(t)
	c, err := New(next, Options{Dataset: "20221023", LRUSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	id := model.Identifier{Catalog: "Messier", Key: "031"}
	for range 3 {
		o, err := lookupOnce(t, c, id)
		if err != nil || o.Name != "NGC0224" {
			t.Fatalf("LookupOne: %v %v", o, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("store calls=%d want 1", next.calls)
	}
}

func TestNotFoundIsNotCached(t *testing.T) {
	next := newSource(t)
	c, _ := New(next, Options{Dataset: "v", LRUSize: 8})
	id := model.Identifier{Key: "NGC9999"}
	for range 2 {
		if _, err := lookupOnce(t, c, id); !errors.Is(err, model.ErrObjectNotFound) {
			t.Fatalf("err=%v want ErrObjectNotFound", err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("store calls=%d want 2", next.calls)
	}
}

func TestRedisTier_SharedAcrossProcesses(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rc, err := redisstore.New(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("redisstore: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	id := model.Identifier{Key: "NGC0224"}
	opts := Options{Dataset: "20221023", Remote: rc, TTL: time.Hour}

	first := newSource(t)
	c1, _ := New(first, opts)
	if _, err := lookupOnce(t, c1, id); err != nil {
		t.Fatalf("LookupOne: %v", err)
	}
	key := keys.Record("20221023", "", "NGC0224")
	if !mr.Exists(key) {
		t.Fatalf("record not written to redis under %s; keys=%v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("ttl=%v want 1h", ttl)
	}

	// A second cache (another process) finds the record in redis.
	second := newSource(t)
	c2, _ := New(second, opts)
	o, err := lookupOnce(t, c2, id)
	if err != nil {
		t.Fatalf("LookupOne: %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("store consulted despite redis hit")
	}
	if o.Name != "NGC0224" || o.CommonNames != "Andromeda Galaxy" || o.RA == nil || *o.RA != 0.18648 {
		t.Fatalf("decoded record differs: %+v", o)
	}
}

func TestRedisTier_CorruptEntryFallsThrough(t *testing.T) {
	mr, _ := miniredis.Run()
	t.Cleanup(mr.Close)
	rc, err := redisstore.New(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("redisstore: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })

	id := model.Identifier{Key: "NGC0224"}
	_ = mr.Set(keys.Record("v", "", "NGC0224"), "{not json")

	next := newSource(t)
	c, _ := New(next, Options{Dataset: "v", Remote: rc})
	o, err := lookupOnce(t, c, id)
	if err != nil || o.Name != "NGC0224" {
		t.Fatalf("LookupOne: %v %v", o, err)
	}
	if next.calls != 1 {
		t.Fatalf("store calls=%d want 1", next.calls)
	}
}

func TestRedisTier_UnreachableFallsThrough(t *testing.T) {
	mr, _ := miniredis.Run()
	rc, err := redisstore.New(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("redisstore: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	mr.Close()

	next := newSource(t)
	c, _ := New(next, Options{Dataset: "v", Remote: rc, OpTimeout: 100 * time.Millisecond})
	if _, err := lookupOnce(t, c, model.Identifier{Key: "NGC0224"}); err != nil {
		t.Fatalf("redis outage must not fail lookups: %v", err)
	}
}

func TestTypeCountsForwarded(t *testing.T) {
	c, _ := New(newSource(t).store, Options{Dataset: "v"})
	h, err := c.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()
	tc, err := h.(lookup.Stats).TypeCounts(context.Background())
	if err != nil || len(tc) != 1 || tc[0].Count != 1 {
		t.Fatalf("TypeCounts=%v err=%v", tc, err)
	}
}

func TestNew_Validates(t *testing.T) {
	if _, err := New(nil, Options{Dataset: "v"}); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := New(newSource(t), Options{}); err == nil {
		t.Fatalf("expected error for empty dataset")
	}
}
