package cache

import (
	"context"
	"testing"
	"time"
)

func TestRedis_FailOpenWithoutClient(t *testing.T) {
	ctx := context.Background()
	r := NewRedisWithClient(nil, nil, time.Minute)

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("GetJSON = (%v, %v), want miss without error", hit, err)
	}

	vals, err := r.GetMany(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(vals) != 2 || vals[0] != nil || vals[1] != nil {
		t.Fatalf("expected two misses, got %v", vals)
	}

	if err := r.SetJSON(ctx, "k", 1, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := r.SetManyJSON(ctx, map[string]any{"a": 1}, 0); err != nil {
		t.Fatalf("SetManyJSON: %v", err)
	}
	if err := r.DeleteByPattern(ctx, "match:*"); err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}
	if ok, err := r.SetIfNotExists(ctx, "lock", "1", 0); !ok || err != nil {
		t.Fatalf("SetIfNotExists = (%v, %v), want (true, nil)", ok, err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected Ping to report unavailability")
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if hit, err := r.GetJSON(context.Background(), "k", &struct{}{}); hit || err != nil {
		t.Fatalf("nil cache should miss silently")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRedis_TTLFallback(t *testing.T) {
	r := NewRedisWithClient(nil, nil, 0)
	if got := r.ttl(0); got != defaultTTL {
		t.Fatalf("ttl(0) = %v, want %v", got, defaultTTL)
	}
	r = NewRedisWithClient(nil, nil, 5*time.Second)
	if got := r.ttl(0); got != 5*time.Second {
		t.Fatalf("ttl(0) = %v, want configured default", got)
	}
	if got := r.ttl(time.Minute); got != time.Minute {
		t.Fatalf("explicit ttl ignored: %v", got)
	}
}
