package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/tunekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("meta", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	if celEnv == nil && err == nil {
		err = fmt.Errorf("cel env not initialized")
	}
	return celEnv, err
}

// Program 是编译好的规则表达式，使用 CEL (Common Expression Language) 实现。
// 编译一次、多次求值；Eval 线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 元信息：meta.release_key < 1950.0 / meta.author_id == 42
//   - 数值：item.score > 0.7
//   - 逻辑：meta.author_id != 1 && item.score >= 0.5
//   - 标签：label.recall_source == "catalog"
//
// 注意：CEL 访问不存在的 key 会报错，用 label.key != null 检查存在性。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译规则表达式。表达式为空时返回恒真 Program。
func Compile(expr string) (*Program, error) {
	p := &Program{expr: expr}
	if expr == "" {
		return p, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	p.prg = prg
	return p, nil
}

// Expr 返回原始表达式文本。
func (p *Program) Expr() string { return p.expr }

// Eval 对单个 item 求值，返回布尔结果。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	labels := make(map[string]interface{})
	if item != nil {
		for k, v := range item.Labels {
			// label.recall_source 直接返回 value
			labels[k] = v.Value
		}
	}

	itemMap := map[string]interface{}{}
	metaMap := map[string]interface{}{}
	if item != nil {
		itemMap["id"] = item.ID
		itemMap["score"] = item.Score
		itemMap["meta"] = item.Meta
		if item.Meta != nil {
			metaMap = item.Meta
		}
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		rctxMap["seed_id"] = rctx.SeedID
		rctxMap["scene"] = rctx.Scene
		rctxMap["params"] = rctx.Params
	}

	return map[string]interface{}{
		"item":  itemMap,
		"meta":  metaMap,
		"label": labels,
		"rctx":  rctxMap,
	}
}
