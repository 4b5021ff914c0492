package mock

import (
	"context"
	"reflect"
	"testing"
)

func TestParse_MakeDetection(t *testing.T) {
	f, err := NewParser().Parse(context.Background(), "a reliable Toyota for commuting")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Make == nil || *f.Make != "toyota" {
		t.Errorf("make = %v, want toyota", f.Make)
	}
	if len(f.Keywords) == 0 || f.Keywords[0] != "reliable" {
		t.Errorf("keywords = %v", f.Keywords)
	}
}

func TestParse_MaxPrice(t *testing.T) {
	tests := []struct {
		prompt string
		want   float64
	}{
		{"something under £15000", 15000},
		{"under 10k please", 10000},
		{"below 8000", 8000},
	}
	for _, tc := range tests {
		f, err := NewParser().Parse(context.Background(), tc.prompt)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.prompt, err)
		}
		if f.MaxPrice == nil || *f.MaxPrice != tc.want {
			t.Errorf("Parse(%q) max price = %v, want %f", tc.prompt, f.MaxPrice, tc.want)
		}
	}
}

func TestParse_NoSignal(t *testing.T) {
	f, err := NewParser().Parse(context.Background(), "zzz qqq")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !f.IsEmpty() {
		t.Errorf("filter = %+v, want empty", f)
	}
}

func TestParse_Deterministic(t *testing.T) {
	prompt := "cheap diesel estate under 9000"
	first, _ := NewParser().Parse(context.Background(), prompt)
	second, _ := NewParser().Parse(context.Background(), prompt)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parses differ: %+v vs %+v", first, second)
	}
}

func TestEmbed_ZeroVectorOfConfiguredDimension(t *testing.T) {
	res, err := NewEmbedder(8).Embed(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(res.Embedding) != 8 {
		t.Fatalf("dimension = %d, want 8", len(res.Embedding))
	}
	for i, v := range res.Embedding {
		if v != 0 {
			t.Errorf("element %d = %f, want 0", i, v)
		}
	}
}
