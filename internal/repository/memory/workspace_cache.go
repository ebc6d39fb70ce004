package memory

import (
	"time"

	"workchat-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// WorkspaceCache memoizes workspace-url resolution. Every channel lookup is
// scoped by the resolved workspace, so this sits on the hot path of reads,
// posts, and websocket handshakes. Workspace urls are immutable after
// creation, which makes a short TTL purely a safety net.
type WorkspaceCache struct {
	cache *cache.Cache
}

func NewWorkspaceCache() *WorkspaceCache {
	return &WorkspaceCache{
		cache: cache.New(10*time.Minute, 30*time.Minute),
	}
}

func (c *WorkspaceCache) Get(url string) (*entity.Workspace, bool) {
	if x, found := c.cache.Get(url); found {
		return x.(*entity.Workspace), true
	}
	return nil, false
}

func (c *WorkspaceCache) Set(workspace *entity.Workspace) {
	c.cache.Set(workspace.Url, workspace, cache.DefaultExpiration)
}

func (c *WorkspaceCache) Delete(url string) {
	c.cache.Delete(url)
}
