package filter

import (
	"context"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/pkg/conv"
)

// SeedAuthorFilter 剔除与种子曲目同作者的所有候选。
// 参考行为：生成的歌单中不出现种子作者的其它曲目，
// 这一约束独立于通用的作者上限，且比上限更严格。
//
// 作者 id 优先从 item.Meta["author_id"] 读取，读不到时回查曲库。
type SeedAuthorFilter struct {
	// Catalog 用于 Meta 缺失时回查作者 id（可选）。
	Catalog core.Catalog
}

func (f *SeedAuthorFilter) Name() string { return "filter.seed_author" }

func (f *SeedAuthorFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || rctx.Seed == nil {
		return false, nil
	}

	if authorID, ok := conv.ToInt64(item.Meta["author_id"]); ok {
		return authorID == rctx.Seed.AuthorID, nil
	}

	if f.Catalog != nil {
		t, err := f.Catalog.GetTrack(ctx, item.ID)
		if err != nil {
			// 查不到作者时保留候选
			return false, nil
		}
		return t.AuthorID == rctx.Seed.AuthorID, nil
	}

	return false, nil
}
