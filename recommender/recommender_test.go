package recommender

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/filmrec/catalog"
	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/feature"
	"github.com/rushteam/filmrec/filter"
	"github.com/rushteam/filmrec/knn"
	"github.com/rushteam/filmrec/pipeline"
	"github.com/rushteam/filmrec/pkg/logging"
	"github.com/rushteam/filmrec/postprocess"
	"github.com/rushteam/filmrec/profile"
	"github.com/rushteam/filmrec/rating"
	"github.com/rushteam/filmrec/recall"
	"github.com/rushteam/filmrec/store"
)

func init() {
	logging.SetLogger(zerolog.Nop())
}

var genres = []string{"Drama", "Comedy", "Thriller", "Horror", "Animation"}

// testCatalog 生成 n 部属性各不相同的影片，ID 从 1 开始。
func testCatalog(n int) *catalog.Catalog {
	movies := make([]*core.Movie, n)
	for i := range movies {
		movies[i] = &core.Movie{
			ID:             int64(i + 1),
			Title:          fmt.Sprintf("Movie %d", i+1),
			Year:           1980 + i,
			Genres:         []string{genres[i%len(genres)]},
			GenreCode:      float64(i % len(genres)),
			Country:        []string{"USA", "France", "Italy"}[i%3],
			Duration:       float64(85 + i*3),
			DurationLog:    float64(i) / 10,
			Directors:      fmt.Sprintf("Director %d", i%4),
			Actors:         fmt.Sprintf("Actor %d, Actor %d", i%6, (i+1)%6),
			AvgVote:        5 + float64(i%5),
			TotalVotes:     float64(100 * (i + 1)),
			WeightedRating: 5 + float64(i%7)/2,
			Humor:          float64(i % 4),
			Rhythm:         float64(i % 3),
			Effort:         float64(i % 5),
			Tension:        float64((i + 2) % 4),
			Erotism:        float64(i % 2),
		}
	}
	return catalog.New(movies)
}

func newService(t *testing.T, cat *catalog.Catalog, opts ...Option) *Service {
	t.Helper()
	s, err := New(catalog.NewStaticHolder(cat), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRecommend_NoLikedIDs(t *testing.T) {
	s := newService(t, testCatalog(10))
	res, err := s.Recommend(context.Background(), Request{
		// 非法区间也不应先于 NO_LIKED_DATA 报告
		Constraints: filter.Constraints{Year: filter.Between(2020, 1990)},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Status != StatusInvalidInput {
		t.Fatalf("status = %s, want %s", res.Status, StatusInvalidInput)
	}
	if res.Err == nil || res.Err.Code != core.ErrorCodeNoLikedData {
		t.Errorf("err = %v, want NO_LIKED_DATA", res.Err)
	}
	if len(res.IDs) != 0 {
		t.Errorf("ids = %v, want none", res.IDs)
	}
}

func TestRecommend_InvalidInput(t *testing.T) {
	s := newService(t, testCatalog(10))
	tests := []struct {
		name string
		req  Request
		code string
	}{
		{
			name: "inverted year range",
			req:  Request{LikedIDs: []int64{1}, Constraints: filter.Constraints{Year: filter.Between(2020, 1990)}},
			code: core.ErrorCodeInvalidFilterRange,
		},
		{
			name: "inverted duration range",
			req:  Request{LikedIDs: []int64{1}, Constraints: filter.Constraints{Duration: filter.Between(200, 60)}},
			code: core.ErrorCodeInvalidFilterRange,
		},
		{
			name: "liked ids not in catalog",
			req:  Request{LikedIDs: []int64{999}},
			code: core.ErrorCodeNoLikedData,
		},
		{
			name: "bad expression",
			req:  Request{LikedIDs: []int64{1}, Constraints: filter.Constraints{Expr: "movie.year >"}},
			code: core.ErrorCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Recommend(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if res.Status != StatusInvalidInput {
				t.Fatalf("status = %s, want %s", res.Status, StatusInvalidInput)
			}
			if res.Err == nil || res.Err.Code != tt.code {
				t.Errorf("err = %v, want %s", res.Err, tt.code)
			}
		})
	}
}

func TestRecommend_Empty(t *testing.T) {
	s := newService(t, testCatalog(10))
	tests := []struct {
		name   string
		req    Request
		reason string
	}{
		{
			name:   "filters exclude everything",
			req:    Request{LikedIDs: []int64{1}, Constraints: filter.Constraints{Genres: []string{"Western"}}},
			reason: recall.ReasonNoCandidates,
		},
		{
			name: "all candidates rated",
			req: Request{
				LikedIDs:    []int64{1},
				DislikedIDs: []int64{6},
				Constraints: filter.Constraints{Genres: []string{"Drama"}},
			},
			reason: recall.ReasonAllRated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Recommend(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if res.Status != StatusEmpty {
				t.Fatalf("status = %s, want %s", res.Status, StatusEmpty)
			}
			if res.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", res.Reason, tt.reason)
			}
			if len(res.IDs) != 0 {
				t.Errorf("ids = %v", res.IDs)
			}
		})
	}
}

func TestRecommend_DefaultK(t *testing.T) {
	s := newService(t, testCatalog(25))
	res, err := s.Recommend(context.Background(), Request{LikedIDs: []int64{1}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Status != StatusOK {
		t.Fatalf("status = %s (%v)", res.Status, res.Err)
	}
	if len(res.IDs) != knn.DefaultK {
		t.Fatalf("got %d ids, want %d", len(res.IDs), knn.DefaultK)
	}
	seen := make(map[int64]bool)
	for i, id := range res.IDs {
		if id == 1 {
			t.Error("liked movie returned")
		}
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
		if i > 0 && res.Neighbors[i].Distance < res.Neighbors[i-1].Distance {
			t.Errorf("distances not ascending at %d", i)
		}
	}
	if res.RequestID == "" {
		t.Error("missing request id")
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	s := newService(t, testCatalog(25))
	req := Request{
		LikedIDs:    []int64{3, 8},
		DislikedIDs: []int64{12},
		Constraints: filter.Constraints{Year: filter.Between(1985, 2004)},
		K:           5,
	}
	first, err := s.Recommend(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := s.Recommend(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first.IDs, again.IDs) {
			t.Fatalf("run %d: %v != %v", i, again.IDs, first.IDs)
		}
	}
	if len(first.IDs) != 5 {
		t.Errorf("got %d ids, want 5", len(first.IDs))
	}
	for _, id := range first.IDs {
		year := 1980 + int(id) - 1
		if year < 1985 || year > 2004 {
			t.Errorf("id %d (year %d) violates year filter", id, year)
		}
		if id == 3 || id == 8 || id == 12 {
			t.Errorf("rated id %d returned", id)
		}
	}
}

func TestRecommend_YearNeighbors(t *testing.T) {
	enc, err := feature.NewEncoder(feature.Config{
		Numeric: []feature.ColumnConfig{{Name: feature.ColumnYear, Weight: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := newService(t, testCatalog(10), WithKNN(&recall.KNN{Encoder: enc, Profile: profile.DefaultOptions(), K: 3}))

	// 喜欢 1980 年的影片（ID 1），最近的依次是 1981、1982、1983
	res, err := s.Recommend(context.Background(), Request{LikedIDs: []int64{1}})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{2, 3, 4}; !reflect.DeepEqual(res.IDs, want) {
		t.Errorf("ids = %v, want %v", res.IDs, want)
	}
}

func TestRecommend_Stages(t *testing.T) {
	stages := pipeline.New(recall.NewKNN(10), &postprocess.Diversity{MaxPerGenre: 1})
	s := newService(t, testCatalog(25), WithStages(stages))
	res, err := s.Recommend(context.Background(), Request{LikedIDs: []int64{1}})
	if err != nil {
		t.Fatal(err)
	}
	cat := testCatalog(25)
	seen := make(map[string]bool)
	for _, id := range res.IDs {
		m, _ := cat.Get(id)
		if seen[m.Genres[0]] {
			t.Errorf("genre %s repeated", m.Genres[0])
		}
		seen[m.Genres[0]] = true
	}

	if _, err := New(catalog.NewStaticHolder(cat), WithStages(pipeline.New(&postprocess.TopNNode{N: 3}))); err == nil {
		t.Error("stages without recall node should be rejected")
	}
}

func TestRecommendMany(t *testing.T) {
	s := newService(t, testCatalog(25), WithConcurrency(2))
	reqs := []Request{
		{LikedIDs: []int64{1}, K: 3},
		{},
		{LikedIDs: []int64{2}, Constraints: filter.Constraints{Genres: []string{"Western"}}},
		{LikedIDs: []int64{4, 5}, K: 2},
	}
	results, err := s.RecommendMany(context.Background(), reqs)
	if err != nil {
		t.Fatalf("RecommendMany: %v", err)
	}
	want := []Status{StatusOK, StatusInvalidInput, StatusEmpty, StatusOK}
	for i, res := range results {
		if res.Status != want[i] {
			t.Errorf("result %d status = %s, want %s", i, res.Status, want[i])
		}
		single, _ := s.Recommend(context.Background(), reqs[i])
		if !reflect.DeepEqual(single.IDs, res.IDs) {
			t.Errorf("result %d = %v, single = %v", i, res.IDs, single.IDs)
		}
	}
}

func TestRecommendForUser(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()
	ratings := rating.NewStore(kv, "")
	s := newService(t, testCatalog(25), WithRatings(ratings))

	res, err := s.RecommendForUser(ctx, "u1", filter.Constraints{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusInvalidInput {
		t.Errorf("user without ratings: status = %s", res.Status)
	}

	if _, err := ratings.Like(ctx, "u1", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := ratings.Dislike(ctx, "u1", 3); err != nil {
		t.Fatal(err)
	}
	res, err = s.RecommendForUser(ctx, "u1", filter.Constraints{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusOK || len(res.IDs) != 5 {
		t.Fatalf("res = %+v", res)
	}
	for _, id := range res.IDs {
		if id == 2 || id == 3 {
			t.Errorf("rated id %d returned", id)
		}
	}

	noStore := newService(t, testCatalog(5))
	if _, err := noStore.RecommendForUser(ctx, "u1", filter.Constraints{}, 5); !core.IsNotSupported(err) {
		t.Errorf("err = %v, want NOT_SUPPORTED", err)
	}
}

func TestSearchSeedStats(t *testing.T) {
	ctx := context.Background()
	s := newService(t, testCatalog(25))

	movies, err := s.Search(ctx, filter.Constraints{Genres: []string{"comedy"}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 2 || movies[0].ID != 2 || movies[1].ID != 7 {
		t.Errorf("search = %v", movies)
	}
	if _, err := s.Search(ctx, filter.Constraints{Duration: filter.Between(10, 1)}, 0); !core.IsInvalidFilterRange(err) {
		t.Errorf("err = %v, want INVALID_FILTER_RANGE", err)
	}

	seed1, err := s.Seed(ctx, 5, 0, 42)
	if err != nil {
		t.Fatal(err)
	}
	seed2, _ := s.Seed(ctx, 5, 0, 42)
	if len(seed1) != 5 || !reflect.DeepEqual(seed1, seed2) {
		t.Errorf("seed not reproducible: %v vs %v", seed1, seed2)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Loaded != 25 {
		t.Errorf("stats.Loaded = %d", st.Loaded)
	}
}

type staticLoader struct {
	cats []*catalog.Catalog
	n    int
}

func (l *staticLoader) Name() string { return "static" }

func (l *staticLoader) Load(context.Context) (*catalog.Catalog, error) {
	if l.n >= len(l.cats) {
		return nil, fmt.Errorf("no more catalogs")
	}
	c := l.cats[l.n]
	l.n++
	return c, nil
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	loader := &staticLoader{cats: []*catalog.Catalog{testCatalog(5), testCatalog(8)}}
	s, err := New(catalog.NewHolder(loader))
	if err != nil {
		t.Fatal(err)
	}

	st, err := s.Stats(ctx)
	if err != nil || st.Loaded != 5 {
		t.Fatalf("Stats() = %+v, %v", st, err)
	}
	st, err = s.Reload(ctx)
	if err != nil || st.Loaded != 8 {
		t.Fatalf("Reload() = %+v, %v", st, err)
	}
	// 加载失败时保留旧快照
	if _, err := s.Reload(ctx); err == nil {
		t.Fatal("expected reload error")
	}
	if st, _ := s.Stats(ctx); st.Loaded != 8 {
		t.Errorf("after failed reload Loaded = %d, want 8", st.Loaded)
	}
}

func TestRecommend_MissingValueRowsNeverRanked(t *testing.T) {
	const data = `filmtv_id,title,year,genre,duration,country,directors,actors,avg_vote,total_votes,humor,rhythm,effort,tension,erotism
1,A,2000,Drama,100,USA,Jane Roe,"Tom Hanks, Meg Ryan",7.5,1000,1,2,3,2,0
2,B,2002,Drama,105,USA,Jane Roe,Tom Hanks,7.2,900,1,2,3,2,0
3,C,2005,Comedy,95,Italy,John Doe,Meg Ryan,6.8,500,3,2,1,1,1
4,D,1950,Horror,300,France,John Doe,Bela Lugosi,2,50,0,4,5,4,2
5,E,2001,Drama,110,USA,Jane Roe,Tom Hanks,NaN,800,1,2,3,2,0
`
	cat, err := catalog.ReadCSV(context.Background(), strings.NewReader(data), 0)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if st := cat.Stats(); st.Loaded != 4 || st.Dropped != 1 {
		t.Fatalf("Loaded = %d Dropped = %d, want 4 and 1", st.Loaded, st.Dropped)
	}

	res, err := newService(t, cat).Recommend(context.Background(), Request{LikedIDs: []int64{1}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Status != StatusOK {
		t.Fatalf("Status = %s, want ok", res.Status)
	}
	if !reflect.DeepEqual(res.IDs, []int64{2, 3, 4}) {
		t.Errorf("IDs = %v, want [2 3 4]", res.IDs)
	}
	for i, nb := range res.Neighbors {
		if math.IsNaN(nb.Distance) || math.IsInf(nb.Distance, 0) {
			t.Fatalf("neighbor %d distance = %v, want finite", nb.ID, nb.Distance)
		}
		if i > 0 && nb.Distance < res.Neighbors[i-1].Distance {
			t.Errorf("distances not ascending: %v", res.Neighbors)
		}
	}
}
