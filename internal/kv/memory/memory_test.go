package memory

import (
	"bytes"
	"context"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "expenses"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, "expenses", []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, ok, err := s.Get(ctx, "expenses")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(v, []byte(`[]`)) {
		t.Fatalf("value: %q", v)
	}

	if err := s.Delete(ctx, "expenses"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "expenses"); ok {
		t.Fatal("deleted key still present")
	}
}

func TestStoreCopiesValues(t *testing.T) {
	s := New()
	ctx := context.Background()

	original := []byte("abc")
	if err := s.Put(ctx, "k", original); err != nil {
		t.Fatalf("Put: %v", err)
	}
	original[0] = 'x'

	v, _, _ := s.Get(ctx, "k")
	if !bytes.Equal(v, []byte("abc")) {
		t.Fatalf("stored value aliased caller slice: %q", v)
	}

	v[0] = 'y'
	v2, _, _ := s.Get(ctx, "k")
	if !bytes.Equal(v2, []byte("abc")) {
		t.Fatalf("returned value aliased stored slice: %q", v2)
	}
}
