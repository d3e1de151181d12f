// Package config 提供内置 Node 的配置工厂，把 YAML/JSON Pipeline 定义变成可运行的 Node 链。
package config

import (
	"fmt"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/filter"
	"github.com/rushteam/tunekit/pipeline"
	"github.com/rushteam/tunekit/pkg/conv"
	"github.com/rushteam/tunekit/rank"
	"github.com/rushteam/tunekit/recall"
	"github.com/rushteam/tunekit/rerank"
	"github.com/rushteam/tunekit/similarity"
)

// DefaultFactory 返回一个包含所有内置 Node 的工厂。
// 曲库是运行期依赖，由调用方注入；配置只描述结构与参数。
func DefaultFactory(cat core.Catalog) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("recall.catalog", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &recall.CatalogRecall{
			Catalog:     cat,
			IncludeSeed: conv.ConfigGet[bool](cfg, "include_seed", false),
		}, nil
	})

	factory.Register("filter", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildFilterNode(cat, cfg)
	})

	factory.Register("rank.similarity", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return buildSimilarityNode(cat, cfg)
	})

	factory.Register("rerank.author_cap", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &rerank.AuthorCapNode{
			MaxPerAuthor: int(conv.ConfigGetInt64(cfg, "max_per_author", 0)),
			Catalog:      cat,
		}, nil
	})

	factory.Register("rerank.topn", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
	})

	return factory
}

func buildSimilarityNode(cat core.Catalog, cfg map[string]interface{}) (pipeline.Node, error) {
	weightsMap, ok := cfg["weights"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("weights not found")
	}

	w := similarity.Weights{
		Author:   conv.ConfigGetFloat64(weightsMap, "author", 0),
		Category: conv.ConfigGetFloat64(weightsMap, "category", 0),
		Time:     conv.ConfigGetFloat64(weightsMap, "time", 0),
		Topic:    conv.ConfigGetFloat64(weightsMap, "topic", 0),
		Feature:  conv.ConfigGetFloat64(weightsMap, "feature", 0),
	}

	policy := similarity.AuthorPolicy(conv.ConfigGet[string](cfg, "author_policy", ""))
	scorer, err := similarity.NewScorer(w, policy)
	if err != nil {
		return nil, err
	}

	return &rank.SimilarityNode{
		Catalog:     cat,
		Scorer:      scorer,
		Parallelism: int(conv.ConfigGetInt64(cfg, "parallelism", 0)),
	}, nil
}

func buildFilterNode(cat core.Catalog, cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet[string](filterMap, "type", "")
		switch filterType {
		case "exclude":
			ids := conv.SliceAnyToInt64(filterMap["ids"])
			key := conv.ConfigGet[string](filterMap, "key", "")
			filters = append(filters, filter.NewExcludeFilter(ids, nil, key))

		case "seed_author":
			filters = append(filters, &filter.SeedAuthorFilter{Catalog: cat})

		case "rule":
			expr := conv.ConfigGet[string](filterMap, "expr", "")
			rf, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule filter: %w", err)
			}
			filters = append(filters, rf)

		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}
