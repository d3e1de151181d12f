// Package recall 提供候选集生成 Node。
package recall

import (
	"context"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/pipeline"
	"github.com/rushteam/tunekit/pkg/utils"
)

// CatalogRecall 是全量曲库召回源：为曲库快照中的每首曲目生成一个候选 Item。
// 顺序为 id 升序（快照顺序），种子曲目默认剔除。
//
// 曲库规模在万级时 O(n) 召回可接受；更大规模应换用索引/近邻召回源，
// 打分契约不需要变化。
type CatalogRecall struct {
	Catalog core.Catalog

	// IncludeSeed 为 true 时保留种子曲目（仅用于调试），默认剔除。
	IncludeSeed bool
}

func (n *CatalogRecall) Name() string        { return "recall.catalog" }
func (n *CatalogRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *CatalogRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil {
		return nil, nil
	}

	tracks, err := n.Catalog.AllTracks(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(tracks))
	for _, t := range tracks {
		if t == nil {
			continue
		}
		if !n.IncludeSeed && rctx != nil && t.ID == rctx.SeedID {
			continue
		}

		it := core.NewItem(t.ID)
		it.Meta["author_id"] = t.AuthorID
		it.Meta["release_key"] = t.ReleaseKey
		it.Meta["title"] = t.Title
		it.Meta["author_name"] = t.AuthorName
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
		out = append(out, it)
	}

	return out, nil
}
