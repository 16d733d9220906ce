package limiter

import (
	"sync"
	"time"
)

// FixedWindow 进程内固定窗口限流器
// 只在单副本内生效，多副本部署时各自独立计数；窗口边界的突发放量是
// 固定窗口的已知特性，换 O(1) 内存和免后台清理。过期 key 留在 map 里
// 直到下一次命中被重置，key 空间小且短命，不做清扫
type FixedWindow struct {
	mu      sync.Mutex
	entries map[string]*window
	now     func() time.Time
}

type window struct {
	count int
	start time.Time
}

func NewFixedWindow() *FixedWindow {
	return &FixedWindow{
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow 计数并判定，过期重置和自增在同一把锁内完成
// 拆成两步检查会把限流器要防的竞争重新引进来
func (s *FixedWindow) Allow(key string, limit int, windowDuration time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.Sub(entry.start) >= windowDuration {
		entry = &window{start: now}
		s.entries[key] = entry
	}

	entry.count++
	return entry.count <= limit
}
