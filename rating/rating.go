// Package rating 保存每个用户喜欢/不喜欢的影片 ID。
//
// 评价是互斥的切换：喜欢一部影片会把它从不喜欢列表移除，反之亦然；
// 重复评价是幂等的。
package rating

import (
	"context"
	"fmt"
	"slices"
	"sync"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/filmrec/core"
)

// Ratings 是一个用户的评价（按评价先后排序）
type Ratings struct {
	Liked    []int64 `json:"liked"`
	Disliked []int64 `json:"disliked"`
}

// Store 在 core.Store 上维护用户评价。
// 同一进程内的写操作按用户串行化；多实例共用 Redis 时后写覆盖先写。
type Store struct {
	kv        core.Store
	keyPrefix string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// DefaultKeyPrefix 是评价 key 的默认前缀：{prefix}:{userID}:liked / :disliked
const DefaultKeyPrefix = "rating"

// NewStore 创建评价存储；keyPrefix 为空时使用 DefaultKeyPrefix。
func NewStore(kv core.Store, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Store{kv: kv, keyPrefix: keyPrefix, locks: make(map[string]*sync.Mutex)}
}

func (s *Store) likedKey(userID string) string    { return s.keyPrefix + ":" + userID + ":liked" }
func (s *Store) dislikedKey(userID string) string { return s.keyPrefix + ":" + userID + ":disliked" }

// Get 读取用户评价；从未评价过的用户返回空 Ratings。
func (s *Store) Get(ctx context.Context, userID string) (Ratings, error) {
	if userID == "" {
		return Ratings{}, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "empty user id")
	}
	var r Ratings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := s.readIDs(gctx, s.likedKey(userID))
		r.Liked = ids
		return err
	})
	g.Go(func() error {
		ids, err := s.readIDs(gctx, s.dislikedKey(userID))
		r.Disliked = ids
		return err
	})
	if err := g.Wait(); err != nil {
		return Ratings{}, err
	}
	return r, nil
}

// Like 把影片加入喜欢列表并从不喜欢列表移除
func (s *Store) Like(ctx context.Context, userID string, movieID int64) (Ratings, error) {
	return s.update(ctx, userID, func(r *Ratings) {
		r.Disliked = remove(r.Disliked, movieID)
		r.Liked = add(r.Liked, movieID)
	})
}

// Dislike 把影片加入不喜欢列表并从喜欢列表移除
func (s *Store) Dislike(ctx context.Context, userID string, movieID int64) (Ratings, error) {
	return s.update(ctx, userID, func(r *Ratings) {
		r.Liked = remove(r.Liked, movieID)
		r.Disliked = add(r.Disliked, movieID)
	})
}

// Unrate 从两个列表中移除影片
func (s *Store) Unrate(ctx context.Context, userID string, movieID int64) (Ratings, error) {
	return s.update(ctx, userID, func(r *Ratings) {
		r.Liked = remove(r.Liked, movieID)
		r.Disliked = remove(r.Disliked, movieID)
	})
}

// Reset 清空用户评价
func (s *Store) Reset(ctx context.Context, userID string) error {
	if userID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "empty user id")
	}
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.kv.Delete(ctx, s.likedKey(userID)); err != nil {
		return err
	}
	return s.kv.Delete(ctx, s.dislikedKey(userID))
}

func (s *Store) update(ctx context.Context, userID string, fn func(*Ratings)) (Ratings, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.Get(ctx, userID)
	if err != nil {
		return Ratings{}, err
	}
	fn(&r)

	liked, err := json.Marshal(r.Liked)
	if err != nil {
		return Ratings{}, fmt.Errorf("encode liked: %w", err)
	}
	disliked, err := json.Marshal(r.Disliked)
	if err != nil {
		return Ratings{}, fmt.Errorf("encode disliked: %w", err)
	}
	err = s.kv.BatchSet(ctx, map[string][]byte{
		s.likedKey(userID):    liked,
		s.dislikedKey(userID): disliked,
	})
	if err != nil {
		return Ratings{}, fmt.Errorf("save ratings for %s: %w", userID, err)
	}
	return r, nil
}

func (s *Store) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *Store) readIDs(ctx context.Context, key string) ([]int64, error) {
	data, err := s.kv.Get(ctx, key)
	if core.IsStoreNotFound(err) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func add(ids []int64, id int64) []int64 {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []int64, id int64) []int64 {
	return slices.DeleteFunc(ids, func(x int64) bool { return x == id })
}
