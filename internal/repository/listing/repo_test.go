package listing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/carprompt/carsearch/internal/db"
	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn  func(ctx context.Context, key string) ([]byte, error)
	setFn  func(ctx context.Context, key string, value []byte) error
	delFn  func(ctx context.Context, key string) error
	scanFn func(ctx context.Context, pattern string) ([]string, error)
	mgetFn func(ctx context.Context, keys []string) ([][]byte, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if m.mgetFn != nil {
		return m.mgetFn(ctx, keys)
	}
	return nil, nil
}

func encodedListing(t *testing.T, l domain.Listing) []byte {
	t.Helper()
	data, err := json.Marshal(toDoc(&l))
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

func TestAll_ReturnsDecodedListings(t *testing.T) {
	l1 := domain.Listing{ID: "a", Title: "Toyota Corolla", Make: "Toyota", Year: 2019,
		Price: 12000, Embedding: []float32{0.1, 0.2}}
	l2 := domain.Listing{ID: "b", Title: "Ford Focus", Make: "Ford", Year: 2016,
		Price: 8000, Mileage: filter.FloatPtr(60000)}

	s := &mockStore{
		scanFn: func(_ context.Context, pattern string) ([]string, error) {
			if pattern != "carsearch:listing:*" {
				t.Errorf("scan pattern = %q", pattern)
			}
			return []string{"carsearch:listing:a", "carsearch:listing:b"}, nil
		},
		mgetFn: func(_ context.Context, keys []string) ([][]byte, error) {
			return [][]byte{encodedListing(t, l1), encodedListing(t, l2)}, nil
		},
	}

	got, err := New(s, "carsearch:").All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "a" || got[0].Embedding[1] != 0.2 {
		t.Errorf("first listing = %+v", got[0])
	}
	if got[1].Mileage == nil || *got[1].Mileage != 60000 {
		t.Errorf("second listing mileage = %v", got[1].Mileage)
	}
}

func TestAll_SkipsCorruptEntries(t *testing.T) {
	good := domain.Listing{ID: "ok", Title: "Kia Rio", Make: "Kia", Year: 2020, Price: 9000}

	s := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"k1", "k2", "k3"}, nil
		},
		mgetFn: func(_ context.Context, _ []string) ([][]byte, error) {
			return [][]byte{[]byte("{not json"), nil, encodedListing(t, good)}, nil
		},
	}

	got, err := New(s, "carsearch:").All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("got %+v, want only the decodable listing", got)
	}
}

func TestAll_EmptyStore(t *testing.T) {
	got, err := New(&mockStore{}, "carsearch:").All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(&mockStore{}, "carsearch:")
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("err = %v, want ErrListingNotFound", err)
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	stored := map[string][]byte{}
	s := &mockStore{
		setFn: func(_ context.Context, key string, value []byte) error {
			stored[key] = value
			return nil
		},
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if v, ok := stored[key]; ok {
				return v, nil
			}
			return nil, db.ErrKeyNotFound
		},
	}
	repo := New(s, "carsearch:")

	in := domain.Listing{
		ID: "rt", Title: "VW Golf", Make: "Volkswagen", Model: "Golf",
		Year: 2018, Price: 11000, Mileage: filter.FloatPtr(45000),
		FuelType: "petrol", Embedding: []float32{0.5, -0.25, 1},
	}
	if err := repo.Put(context.Background(), &in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := stored["carsearch:listing:rt"]; !ok {
		t.Fatalf("stored keys = %v, want carsearch:listing:rt", stored)
	}

	out, err := repo.Get(context.Background(), "rt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Title != in.Title || out.Year != in.Year || *out.Mileage != *in.Mileage {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if len(out.Embedding) != 3 || out.Embedding[2] != 1 {
		t.Errorf("embedding = %v", out.Embedding)
	}
}

func TestVectorCodec(t *testing.T) {
	if _, err := bytesToVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated bytes")
	}
	if got, err := bytesToVector(nil); err != nil || got != nil {
		t.Errorf("empty input: got %v, err %v", got, err)
	}
	in := []float32{0, -1.5, 3.25}
	out, err := bytesToVector(vectorToBytes(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("element %d = %f, want %f", i, out[i], in[i])
		}
	}
}
