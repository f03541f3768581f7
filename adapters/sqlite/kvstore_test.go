package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestKVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(testDB(t))

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "semesters", `[]`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, "semesters")
	if err != nil || !ok || v != `[]` {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}

	// Set replaces the whole value.
	if err := s.Set(ctx, "semesters", `[{"id":"s1"}]`); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.Get(ctx, "semesters")
	if v != `[{"id":"s1"}]` {
		t.Errorf("after replace, Get = %q", v)
	}
}

func TestKVStoreMultiGet(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(testDB(t))

	_ = s.Set(ctx, "a", "1")
	_ = s.Set(ctx, "b", "2")

	got, err := s.MultiGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Errorf("MultiGet = %v", got)
	}

	empty, err := s.MultiGet(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("MultiGet(nil) = %v, %v", empty, err)
	}
}

func TestKVStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(testDB(t))

	_ = s.Set(ctx, "a", "1")
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("key survived Delete")
	}
	if err := s.Delete(ctx, "never"); err != nil {
		t.Errorf("Delete of missing key errored: %v", err)
	}
}
