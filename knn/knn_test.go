package knn

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
)

func neighborIDs(ns []Neighbor) []int64 {
	out := make([]int64, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestIndex_Search(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}
	vectors := []feature.Vector{{0, 0}, {3, 4}, {1, 0}, {0, 1}, {10, 10}}
	idx, err := NewIndex(ids, vectors)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	tests := []struct {
		name    string
		exclude map[int64]struct{}
		k       int
		want    []int64
	}{
		{name: "stable ties keep candidate order", k: 3, want: []int64{1, 3, 4}},
		{name: "exclude before ranking", exclude: map[int64]struct{}{1: {}}, k: 3, want: []int64{3, 4, 2}},
		{name: "fewer than k returns all", k: 50, want: []int64{1, 3, 4, 2, 5}},
		{name: "default k", k: 0, want: []int64{1, 3, 4, 2, 5}},
		{name: "all excluded", exclude: map[int64]struct{}{1: {}, 2: {}, 3: {}, 4: {}, 5: {}}, k: 3, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Search(feature.Vector{0, 0}, tt.exclude, tt.k)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if !reflect.DeepEqual(neighborIDs(got), tt.want) {
				t.Errorf("Search() = %v, want %v", neighborIDs(got), tt.want)
			}
			for _, n := range got {
				if _, ok := tt.exclude[n.ID]; ok {
					t.Errorf("excluded id %d returned", n.ID)
				}
			}
		})
	}
}

func TestIndex_SearchSortedAndBounded(t *testing.T) {
	ids := make([]int64, 25)
	vectors := make([]feature.Vector, 25)
	for i := range ids {
		ids[i] = int64(i + 1)
		vectors[i] = feature.Vector{float64((i * 7) % 25), float64(i % 3)}
	}
	idx, err := NewIndex(ids, vectors)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	got, err := idx.Search(feature.Vector{3, 1}, nil, DefaultK)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != DefaultK {
		t.Fatalf("len = %d, want %d", len(got), DefaultK)
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Distance < got[j].Distance }) {
		t.Error("neighbors not sorted by distance")
	}
}

func TestNewIndex_DimensionMismatch(t *testing.T) {
	_, err := NewIndex([]int64{1, 2}, []feature.Vector{{0, 0}, {1}})
	if !core.IsInvalidInput(err) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}

	idx, _ := NewIndex([]int64{1}, []feature.Vector{{0, 0}})
	if _, err := idx.Search(feature.Vector{0}, nil, 1); !core.IsInvalidInput(err) {
		t.Fatalf("query mismatch err = %v, want INVALID_INPUT", err)
	}
}

func TestEuclideanDistance(t *testing.T) {
	if got := EuclideanDistance([]float64{0, 0}, []float64{3, 4}); got != 5 {
		t.Errorf("EuclideanDistance = %v, want 5", got)
	}
	if got := EuclideanDistance([]float64{0}, []float64{3, 4}); !math.IsInf(got, 1) {
		t.Errorf("mismatched dims = %v, want +Inf", got)
	}
}
