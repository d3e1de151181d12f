package core

import "github.com/rushteam/tunekit/pkg/utils"

// RecommendContext 承载一次歌单构建的种子/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// SeedID 是种子曲目 id，歌单从它出发构建。
	SeedID int64

	// Seed 是已解析的种子曲目，由 Builder 在进入 Pipeline 前填充。
	Seed *Track

	// Scene 标记调用场景（如 "radio", "daily_mix"），仅用于观测。
	Scene string

	// Labels 是请求级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（如 max_size, max_per_author 等透传值）。
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
