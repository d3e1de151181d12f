package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/feast"
	"github.com/rushteam/tunekit/pkg/conv"
)

// Feast 特征名约定：{FeatureView}:{属性}。
// 上游数据准备作业把每首曲目的预计算属性物化到在线存储，
// 这里按 id 批量取回并还原成定型的 core.Track。
const (
	attrAuthorID   = "author_id"
	attrAuthorName = "author_name"
	attrTitle      = "title"
	attrReleaseKey = "release_key"
	attrCategories = "category_ids"
)

var rankedAttrs = []string{
	"topic_1", "topic_2", "topic_3",
	"feature_1", "feature_2", "feature_3",
}

// FeastLoader 从 Feast 在线特征库装载曲目属性，产出内存曲库。
// 属性缺失或类型不符时按零值替代并记录日志，不中断装载。
type FeastLoader struct {
	Client feast.Client

	// FeatureView 是特征视图名，默认 "track_attrs"。
	FeatureView string

	// EntityKey 是实体键名，默认 "track_id"。
	EntityKey string

	// BatchSize 是每次请求的实体行数，默认 256。
	BatchSize int

	Logger *slog.Logger
}

func (l *FeastLoader) featureView() string {
	if l.FeatureView == "" {
		return "track_attrs"
	}
	return l.FeatureView
}

func (l *FeastLoader) entityKey() string {
	if l.EntityKey == "" {
		return "track_id"
	}
	return l.EntityKey
}

func (l *FeastLoader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *FeastLoader) featureRefs() []string {
	view := l.featureView()
	attrs := []string{attrAuthorID, attrAuthorName, attrTitle, attrReleaseKey, attrCategories}
	attrs = append(attrs, rankedAttrs...)
	refs := make([]string, 0, len(attrs))
	for _, a := range attrs {
		refs = append(refs, view+":"+a)
	}
	return refs
}

// Load 按 id 批量装载曲目并构建内存曲库。
func (l *FeastLoader) Load(ctx context.Context, ids []int64) (*Memory, error) {
	if l.Client == nil {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: feast client is nil")
	}

	batch := l.BatchSize
	if batch <= 0 {
		batch = 256
	}

	tracks := make([]core.Track, 0, len(ids))
	for start := 0; start < len(ids); start += batch {
		end := start + batch
		if end > len(ids) {
			end = len(ids)
		}
		got, err := l.loadBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, got...)
	}

	return NewMemory(tracks), nil
}

func (l *FeastLoader) loadBatch(ctx context.Context, ids []int64) ([]core.Track, error) {
	entityRows := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		entityRows[i] = map[string]interface{}{l.entityKey(): id}
	}

	resp, err := l.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   l.featureRefs(),
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, fmt.Errorf("feast load batch: %w", err)
	}
	if len(resp.FeatureVectors) != len(ids) {
		return nil, fmt.Errorf("feast load batch: expected %d vectors, got %d", len(ids), len(resp.FeatureVectors))
	}

	view := l.featureView()
	tracks := make([]core.Track, 0, len(ids))
	for i, vec := range resp.FeatureVectors {
		tracks = append(tracks, l.buildTrack(ids[i], view, vec.Values))
	}
	return tracks, nil
}

// buildTrack 把一条特征向量还原为 Track；缺失属性按零值处理。
func (l *FeastLoader) buildTrack(id int64, view string, values map[string]interface{}) core.Track {
	t := core.Track{ID: id}

	get := func(attr string) (interface{}, bool) {
		v, ok := values[view+":"+attr]
		return v, ok
	}

	if v, ok := get(attrAuthorID); ok {
		if n, ok := conv.ToInt64(v); ok {
			t.AuthorID = n
		} else {
			l.logger().Warn("feast attribute has unexpected type, using zero value",
				"track_id", id, "attr", attrAuthorID)
		}
	}
	if v, ok := get(attrReleaseKey); ok {
		if f, ok := conv.ToFloat64(v); ok {
			t.ReleaseKey = f
		} else {
			l.logger().Warn("feast attribute has unexpected type, using zero value",
				"track_id", id, "attr", attrReleaseKey)
		}
	}
	if v, ok := get(attrTitle); ok {
		if s, ok := conv.ToString(v); ok {
			t.Title = s
		}
	}
	if v, ok := get(attrAuthorName); ok {
		if s, ok := conv.ToString(v); ok {
			t.AuthorName = s
		}
	}

	for slot := 0; slot < core.RankSlots; slot++ {
		if v, ok := get(fmt.Sprintf("topic_%d", slot+1)); ok {
			if n, ok := conv.ToInt64(v); ok {
				t.Topics[slot] = n
			}
		}
		if v, ok := get(fmt.Sprintf("feature_%d", slot+1)); ok {
			if n, ok := conv.ToInt64(v); ok {
				t.Features[slot] = n
			}
		}
	}

	if v, ok := get(attrCategories); ok {
		t.Categories = decodeCategories(v)
		if t.Categories == nil {
			l.logger().Debug("feast category attribute missing or malformed, scoring will treat it as empty",
				"track_id", id)
		}
	}

	return t
}

func decodeCategories(v interface{}) map[int64]struct{} {
	var ids []int64
	switch val := v.(type) {
	case []int64:
		ids = val
	case []interface{}:
		ids = conv.SliceAnyToInt64(val)
	default:
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
