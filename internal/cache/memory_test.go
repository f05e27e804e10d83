// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	// Mutating the returned slice must not affect the cached value.
	got[0] = 'x'
	again, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(again) != "v" {
		t.Errorf("cached value mutated through returned slice: %q", again)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()

	if _, err := c.Get(context.Background(), "absent"); err != ErrCacheMiss {
		t.Errorf("Get absent key = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get expired key = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get after delete = %v, want ErrCacheMiss", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete absent key = %v, want nil", err)
	}
}

func TestMemoryCacheMaxSize(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute, MaxSize: 2})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "a", []byte("1"), time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "b", []byte("2"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "c", []byte("3"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// "a" expires first, so it is the eviction victim.
	if _, err := c.Get(ctx, "a"); err != ErrCacheMiss {
		t.Errorf("Get evicted key = %v, want ErrCacheMiss", err)
	}
	if _, err := c.Get(ctx, "b"); err != nil {
		t.Errorf("Get surviving key: %v", err)
	}
	if _, err := c.Get(ctx, "c"); err != nil {
		t.Errorf("Get surviving key: %v", err)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); err != ErrCacheClosed {
		t.Errorf("Get after close = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != ErrCacheClosed {
		t.Errorf("Set after close = %v, want ErrCacheClosed", err)
	}
}
