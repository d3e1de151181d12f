package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/rushteam/tunekit/core"
)

// StoreCatalog 是基于 core.KeyValueStore 的曲库实现：
// 曲目记录存放在 Hash（field = 曲目 id，value = JSON），
// 另以有序集合维护 id 索引，便于快照遍历。
//
// 配合 store.MemoryStore 可做测试，配合 store.RedisStore 可在
// 多个进程间共享同一份曲库快照。
type StoreCatalog struct {
	Store core.KeyValueStore

	// KeyPrefix 是存储 key 前缀，默认 "tunekit:catalog"。
	// 记录 Hash key 为 {KeyPrefix}:tracks，索引 zset key 为 {KeyPrefix}:index。
	KeyPrefix string
}

// storedTrack 是 Track 的序列化形态；Categories 以有序切片存放。
type storedTrack struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	Categories []int64   `json:"categories,omitempty"`
	ReleaseKey float64   `json:"release_key"`
	Topics     [3]int64  `json:"topics"`
	Features   [3]int64  `json:"features"`
	Title      string    `json:"title,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
}

func NewStoreCatalog(kv core.KeyValueStore, keyPrefix string) *StoreCatalog {
	if keyPrefix == "" {
		keyPrefix = "tunekit:catalog"
	}
	return &StoreCatalog{Store: kv, KeyPrefix: keyPrefix}
}

var _ core.Catalog = (*StoreCatalog)(nil)

func (c *StoreCatalog) tracksKey() string { return c.KeyPrefix + ":tracks" }
func (c *StoreCatalog) indexKey() string  { return c.KeyPrefix + ":index" }

// SaveTrack 写入/覆盖一条曲目记录并更新索引。
func (c *StoreCatalog) SaveTrack(ctx context.Context, t *core.Track) error {
	if t == nil {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: nil track")
	}

	data, err := json.Marshal(encodeTrack(t))
	if err != nil {
		return fmt.Errorf("marshal track %d: %w", t.ID, err)
	}

	field := strconv.FormatInt(t.ID, 10)
	if err := c.Store.HSet(ctx, c.tracksKey(), field, data); err != nil {
		return fmt.Errorf("store track %d: %w", t.ID, err)
	}
	if err := c.Store.ZAdd(ctx, c.indexKey(), float64(t.ID), field); err != nil {
		return fmt.Errorf("index track %d: %w", t.ID, err)
	}
	return nil
}

// SaveAll 批量写入曲目。
func (c *StoreCatalog) SaveAll(ctx context.Context, tracks []core.Track) error {
	for i := range tracks {
		if err := c.SaveTrack(ctx, &tracks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *StoreCatalog) GetTrack(ctx context.Context, id int64) (*core.Track, error) {
	data, err := c.Store.HGet(ctx, c.tracksKey(), strconv.FormatInt(id, 10))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrTrackNotFound
		}
		return nil, fmt.Errorf("load track %d: %w", id, err)
	}

	var st storedTrack
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode track %d: %w", id, err)
	}
	return decodeTrack(&st), nil
}

func (c *StoreCatalog) AllTracks(ctx context.Context) ([]*core.Track, error) {
	records, err := c.Store.HGetAll(ctx, c.tracksKey())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	out := make([]*core.Track, 0, len(records))
	for field, data := range records {
		var st storedTrack
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("decode track %s: %w", field, err)
		}
		out = append(out, decodeTrack(&st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count 返回索引中的曲目数量。
func (c *StoreCatalog) Count(ctx context.Context) (int, error) {
	ids, err := c.Store.ZRange(ctx, c.indexKey(), 0, -1)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func encodeTrack(t *core.Track) *storedTrack {
	st := &storedTrack{
		ID:         t.ID,
		AuthorID:   t.AuthorID,
		ReleaseKey: t.ReleaseKey,
		Topics:     t.Topics,
		Features:   t.Features,
		Title:      t.Title,
		AuthorName: t.AuthorName,
	}
	if len(t.Categories) > 0 {
		st.Categories = make([]int64, 0, len(t.Categories))
		for id := range t.Categories {
			st.Categories = append(st.Categories, id)
		}
		sort.Slice(st.Categories, func(i, j int) bool { return st.Categories[i] < st.Categories[j] })
	}
	return st
}

func decodeTrack(st *storedTrack) *core.Track {
	t := &core.Track{
		ID:         st.ID,
		AuthorID:   st.AuthorID,
		ReleaseKey: st.ReleaseKey,
		Topics:     st.Topics,
		Features:   st.Features,
		Title:      st.Title,
		AuthorName: st.AuthorName,
	}
	if len(st.Categories) > 0 {
		t.Categories = make(map[int64]struct{}, len(st.Categories))
		for _, id := range st.Categories {
			t.Categories[id] = struct{}{}
		}
	}
	return t
}
