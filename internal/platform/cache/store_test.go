package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	var loads int32
	loader := func(context.Context) (any, error) {
		atomic.AddInt32(&loads, 1)
		return []string{"a", "b"}, nil
	}

	first, err := store.GetOrLoad(ctx, "ranking:global:Master A", loader)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := store.GetOrLoad(ctx, "ranking:global:Master A", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if atomic.LoadInt32(&loads) != 1 {
		t.Fatalf("expected single load, got %d", loads)
	}
	if len(first.([]string)) != 2 || len(second.([]string)) != 2 {
		t.Fatalf("unexpected cached values: %v %v", first, second)
	}
}

func TestStore_LoadErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	boom := errors.New("boom")
	var loads int32
	loader := func(context.Context) (any, error) {
		if atomic.AddInt32(&loads, 1) == 1 {
			return nil, boom
		}
		return 42, nil
	}

	if _, err := store.GetOrLoad(ctx, "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	value, err := store.GetOrLoad(ctx, "k", loader)
	if err != nil {
		t.Fatalf("retry load: %v", err)
	}
	if value != 42 {
		t.Fatalf("expected retried value, got %v", value)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "ranking:event:e1", 1)
	store.Set(ctx, "ranking:global:Elite Open", 2)
	store.Set(ctx, "events:list", 3)

	store.DeletePrefix(ctx, "ranking:")

	if _, ok := store.Get(ctx, "ranking:event:e1"); ok {
		t.Fatal("expected ranking:event:e1 to be evicted")
	}
	if _, ok := store.Get(ctx, "ranking:global:Elite Open"); ok {
		t.Fatal("expected ranking:global:Elite Open to be evicted")
	}
	if _, ok := store.Get(ctx, "events:list"); !ok {
		t.Fatal("expected events:list to survive prefix eviction")
	}
}
