package filter

import (
	"context"
	"strconv"
	"strings"

	"github.com/rushteam/tunekit/core"
)

// ExcludeFilter 是排除名单过滤器：一次构建内禁止再次选中的曲目 id。
type ExcludeFilter struct {
	ids map[int64]struct{}

	// Store 用于从存储中读取动态排除名单（可选）。
	// 名单以逗号分隔的 id 文本存放在 Key 下。
	Store core.Store
	Key   string
}

// NewExcludeFilter 创建一个排除名单过滤器。
func NewExcludeFilter(ids []int64, store core.Store, key string) *ExcludeFilter {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &ExcludeFilter{ids: set, Store: store, Key: key}
}

func (f *ExcludeFilter) Name() string { return "filter.exclude" }

// Add 向内存名单追加 id（Builder 在迭代构建时使用）。
func (f *ExcludeFilter) Add(ids ...int64) {
	if f.ids == nil {
		f.ids = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
}

// Contains 判断 id 是否在内存名单中。
func (f *ExcludeFilter) Contains(id int64) bool {
	_, ok := f.ids[id]
	return ok
}

func (f *ExcludeFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if _, ok := f.ids[item.ID]; ok {
		return true, nil
	}

	// 从 Store 检查动态名单
	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err == nil {
			for _, part := range strings.Split(string(data), ",") {
				id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
				if err != nil {
					continue
				}
				if id == item.ID {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
