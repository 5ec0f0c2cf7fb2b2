package kv

import "testing"

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Set("activity:FL1", []byte(`{"searches":[]}`)); err != nil {
		t.Fatalf("unexpected error on Set: %v", err)
	}

	value, ok, err := store.Get("activity:FL1")
	if err != nil {
		t.Fatalf("unexpected error on Get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(value) != `{"searches":[]}` {
		t.Errorf("unexpected value: %s", value)
	}

	if err := store.Delete("activity:FL1"); err != nil {
		t.Fatalf("unexpected error on Delete: %v", err)
	}
	_, ok, err = store.Get("activity:FL1")
	if err != nil {
		t.Fatalf("unexpected error on Get after delete: %v", err)
	}
	if ok {
		t.Error("expected key to be gone after delete")
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if err := store.Set("k", []byte("abc")); err != nil {
		t.Fatalf("unexpected error on Set: %v", err)
	}
	value, _, _ := store.Get("k")
	value[0] = 'z'

	again, _, _ := store.Get("k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %s", again)
	}
}

func TestMemoryStore_ForEachPrefix(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	entries := map[string]string{
		"activity:FL1":   "a",
		"activity:FL2":   "b",
		"escalation:FL1": "c",
	}
	for key, value := range entries {
		if err := store.Set(key, []byte(value)); err != nil {
			t.Fatalf("unexpected error on Set: %v", err)
		}
	}

	var visited []string
	err := store.ForEach("activity:", func(key string, value []byte) error {
		visited = append(visited, key)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error on ForEach: %v", err)
	}
	if len(visited) != 2 {
		t.Fatalf("expected 2 keys with prefix, got %d: %v", len(visited), visited)
	}
	if visited[0] != "activity:FL1" || visited[1] != "activity:FL2" {
		t.Errorf("unexpected iteration order: %v", visited)
	}
}

func TestMemoryStore_ClosedStore(t *testing.T) {
	store := NewMemoryStore()
	store.Close()

	if err := store.Set("k", []byte("v")); err != ErrClosed {
		t.Errorf("expected ErrClosed on Set, got %v", err)
	}
	if _, _, err := store.Get("k"); err != ErrClosed {
		t.Errorf("expected ErrClosed on Get, got %v", err)
	}
}
