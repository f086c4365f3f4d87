package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rushteam/filmrec/core"
)

// Holder 持有当前目录快照。读取无锁；Reload 整体替换快照，
// 正在进行的请求继续使用旧快照。
type Holder struct {
	loader Loader

	mu      sync.Mutex // 串行化加载
	current atomic.Pointer[Catalog]
}

// NewHolder 创建 Holder，首次 Current 时懒加载。
func NewHolder(loader Loader) *Holder {
	return &Holder{loader: loader}
}

// NewStaticHolder 创建持有固定目录的 Holder（没有 Loader，Reload 不可用）。
func NewStaticHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current 返回当前快照，尚未加载时先加载。
func (h *Holder) Current(ctx context.Context) (*Catalog, error) {
	if c := h.current.Load(); c != nil {
		return c, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if c := h.current.Load(); c != nil {
		return c, nil
	}
	return h.reloadLocked(ctx)
}

// Reload 重新加载并替换快照；加载失败时保留旧快照。
func (h *Holder) Reload(ctx context.Context) (*Catalog, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reloadLocked(ctx)
}

// Set 直接替换快照
func (h *Holder) Set(c *Catalog) {
	h.current.Store(c)
}

func (h *Holder) reloadLocked(ctx context.Context) (*Catalog, error) {
	if h.loader == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotSupported, "catalog holder has no loader")
	}
	c, err := h.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	h.current.Store(c)
	return c, nil
}
