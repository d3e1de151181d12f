package filter

import (
	"context"

	"github.com/rushteam/tunekit/core"
	"github.com/rushteam/tunekit/pkg/dsl"
)

// RuleFilter 是 CEL 规则过滤器：表达式求值为 true 的候选被过滤。
//
// 示例：
//   - `meta.release_key < 1950.0` → 过滤 1950 年之前的曲目
//   - `meta.author_id == 42`      → 过滤指定作者
//
// 表达式在构造时编译一次；单条候选求值出错时保留该候选（fail-open）。
type RuleFilter struct {
	prg *dsl.Program
}

// NewRuleFilter 编译表达式并创建规则过滤器。编译失败返回错误。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{prg: prg}, nil
}

func (f *RuleFilter) Name() string { return "filter.rule" }

// Expr 返回规则表达式文本。
func (f *RuleFilter) Expr() string { return f.prg.Expr() }

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.prg == nil || f.prg.Expr() == "" {
		return false, nil
	}

	matched, err := f.prg.Eval(item, rctx)
	if err != nil {
		return false, err
	}
	return matched, nil
}
