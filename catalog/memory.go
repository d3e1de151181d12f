// Package catalog 提供 core.Catalog 的基础设施实现：
// 内存快照、KeyValueStore 持久化快照、以及从 Feast 特征库装载曲目属性。
package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/tunekit/core"
)

// Memory 是内存实现的曲库：构造时建好索引，之后只读。
type Memory struct {
	mu     sync.RWMutex
	byID   map[int64]*core.Track
	sorted []*core.Track // id 升序快照
}

// NewMemory 从一批曲目构建内存曲库。
// 同一 id 出现多次时，后出现的覆盖先出现的。
func NewMemory(tracks []core.Track) *Memory {
	m := &Memory{byID: make(map[int64]*core.Track, len(tracks))}
	for i := range tracks {
		t := tracks[i]
		m.byID[t.ID] = &t
	}
	m.sorted = make([]*core.Track, 0, len(m.byID))
	for _, t := range m.byID {
		m.sorted = append(m.sorted, t)
	}
	sort.Slice(m.sorted, func(i, j int) bool { return m.sorted[i].ID < m.sorted[j].ID })
	return m
}

var _ core.Catalog = (*Memory)(nil)

func (m *Memory) GetTrack(ctx context.Context, id int64) (*core.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.byID[id]
	if !ok {
		return nil, core.ErrTrackNotFound
	}
	return t, nil
}

func (m *Memory) AllTracks(ctx context.Context) ([]*core.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Track, len(m.sorted))
	copy(out, m.sorted)
	return out, nil
}

// Len 返回曲库大小。
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sorted)
}
