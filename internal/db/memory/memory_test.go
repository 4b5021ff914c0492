package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/carprompt/carsearch/internal/db"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("missing key err = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, err)
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("deleted key err = %v, want ErrKeyNotFound", err)
	}
}

func TestSetWithTTL_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expired key err = %v, want ErrKeyNotFound", err)
	}
}

func TestScan_GlobAndSorted(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, k := range []string{"app:listing:b", "app:listing:a", "app:other:c"} {
		if err := s.Set(ctx, k, []byte("x")); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	keys, err := s.Scan(ctx, "app:listing:*")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"app:listing:a", "app:listing:b"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Scan = %v, want %v", keys, want)
	}
}

func TestMGet_MissingKeysAreNil(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.Set(ctx, "a", []byte("1"))

	values, err := s.MGet(ctx, []string{"a", "missing"})
	if err != nil {
		t.Fatalf("MGet: %v", err)
	}
	if string(values[0]) != "1" || values[1] != nil {
		t.Errorf("MGet = %v", values)
	}
}

func TestRPush(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_ = s.RPush(ctx, "log", []byte("one"))
	_ = s.RPush(ctx, "log", []byte("two"))

	if n := s.ListLen("log"); n != 2 {
		t.Errorf("ListLen = %d, want 2", n)
	}
}
