package embcache

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/carprompt/carsearch/internal/db"
	"github.com/carprompt/carsearch/internal/domain"
)

type mockKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockKV() *mockKV {
	return &mockKV{data: map[string][]byte{}}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKV) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

type countingEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (e *countingEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	e.calls++
	if e.err != nil {
		return domain.EmbeddingResult{}, e.err
	}
	return domain.EmbeddingResult{Embedding: e.vec, TotalTokens: 7}, nil
}

func newCached(inner domain.Embedder, kv *mockKV) *CachedEmbedder {
	return New(inner, kv, "carsearch:", time.Hour, nil, zap.NewNop())
}

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{0.5, -1, 2}}
	kv := newMockKV()
	c := newCached(inner, kv)

	first, err := c.Embed(context.Background(), "reliable toyota")
	if err != nil {
		t.Fatalf("first Embed: %v", err)
	}
	if first.TotalTokens != 7 {
		t.Errorf("miss TotalTokens = %d, want inner usage", first.TotalTokens)
	}

	second, err := c.Embed(context.Background(), "reliable toyota")
	if err != nil {
		t.Fatalf("second Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if !reflect.DeepEqual(second.Embedding, first.Embedding) {
		t.Errorf("hit vector = %v, want %v", second.Embedding, first.Embedding)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
	}
}

func TestEmbed_DifferentTextsGetDifferentKeys(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1}}
	c := newCached(inner, newMockKV())

	_, _ = c.Embed(context.Background(), "one")
	_, _ = c.Embed(context.Background(), "two")
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestEmbed_CacheReadFailureFallsThrough(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1}}
	kv := newMockKV()
	kv.getErr = errors.New("store down")
	c := newCached(inner, kv)

	res, err := c.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.calls != 1 || len(res.Embedding) != 1 {
		t.Errorf("calls = %d, vec = %v", inner.calls, res.Embedding)
	}
}

func TestEmbed_CacheWriteFailureIsNotFatal(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1}}
	kv := newMockKV()
	kv.setErr = errors.New("read only")
	c := newCached(inner, kv)

	if _, err := c.Embed(context.Background(), "x"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("provider down")}
	c := newCached(inner, newMockKV())

	if _, err := c.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}
