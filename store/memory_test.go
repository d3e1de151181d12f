package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/tunekit/core"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing): want ErrStoreNotFound, got %v", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete: want ErrStoreNotFound, got %v", err)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if err := m.Set(ctx, "k", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	// 直接把过期时间拨到过去，避免真实等待
	m.mu.Lock()
	m.data["k"].expireAt = time.Now().Add(-time.Second)
	m.mu.Unlock()

	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after expiry: want ErrStoreNotFound, got %v", err)
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	err := m.BatchSet(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	})
	if err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	want := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BatchGet() = %v, want %v", got, want)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	for member, score := range map[string]float64{
		"low": 1, "high": 3, "mid-a": 2, "mid-b": 2,
	} {
		if err := m.ZAdd(ctx, "z", score, member); err != nil {
			t.Fatalf("ZAdd(%s) error = %v", member, err)
		}
	}

	// 降序，同分按成员字典序
	got, err := m.ZRange(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"high", "mid-a", "mid-b", "low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ZRange() = %v, want %v", got, want)
	}

	top, err := m.ZRange(ctx, "z", 0, 1)
	if err != nil {
		t.Fatalf("ZRange(0,1) error = %v", err)
	}
	if !reflect.DeepEqual(top, []string{"high", "mid-a"}) {
		t.Errorf("ZRange(0,1) = %v", top)
	}

	score, err := m.ZScore(ctx, "z", "high")
	if err != nil {
		t.Fatalf("ZScore() error = %v", err)
	}
	if score != 3 {
		t.Errorf("ZScore(high) = %v, want 3", score)
	}
	if _, err := m.ZScore(ctx, "z", "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(nope): want ErrStoreNotFound, got %v", err)
	}
}

func TestMemoryStoreHash(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if err := m.HSet(ctx, "h", "f1", []byte("v1")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := m.HSet(ctx, "h", "f2", []byte("v2")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	v, err := m.HGet(ctx, "h", "f1")
	if err != nil {
		t.Fatalf("HGet() error = %v", err)
	}
	if string(v) != "v1" {
		t.Errorf("HGet(f1) = %q", v)
	}
	if _, err := m.HGet(ctx, "h", "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("HGet(nope): want ErrStoreNotFound, got %v", err)
	}

	all, err := m.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 || string(all["f2"]) != "v2" {
		t.Errorf("HGetAll() = %v", all)
	}

	// Delete 连同 hash 一起清理
	if err := m.Delete(ctx, "h"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	empty, err := m.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("HGetAll after Delete: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("HGetAll after Delete = %v, want empty", empty)
	}
}
