// Package tunekit 是一个曲目相似度与歌单生成工具包。
//
// 设计要点：
// - Pipeline-first: 歌单构建逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
// - 确定性: 打分无随机性，平分按曲目 id 升序裁决，同一输入产出相同歌单
//
// 快速上手：playlist.NewBuilder(catalog, opts).Build(ctx, seedID, weights, maxSize, maxPerAuthor)
package tunekit

import "github.com/rushteam/tunekit/pipeline"

// 轻量 facade：便于用户直接 import "tunekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
