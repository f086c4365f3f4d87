// Package store 提供 core.Store 的实现：内存（测试）、SQLite（命令行单机持久化）
// 与 Redis（多实例共享）。
//
//	var s core.Store = store.NewMemoryStore()
//	s, err := store.NewSQLiteStore(ctx, "filmrec.db")
//	s, err := store.NewRedisStore(ctx, store.RedisOptions{Addr: "localhost:6379"})
package store

import "github.com/rushteam/filmrec/core"

// ErrNotFound 是 key 不存在时返回的错误，与 core.ErrStoreNotFound 相同。
var ErrNotFound = core.ErrStoreNotFound
