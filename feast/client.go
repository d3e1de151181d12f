// Package feast 封装 Feast Feature Store 的在线特征读取。
// 领域层只依赖 Client 接口；gRPC 实现基于官方 SDK。
package feast

import "context"

// Client 是 Feast 在线特征读取的客户端接口。
//
// tunekit 只读在线特征：曲目的预计算属性（author_id、release_key、
// topic/feature 槽位、category id 列表）由上游数据准备作业物化到
// Feast 在线存储，这里按曲目 id 批量取回。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征。
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["track_attrs:author_id"]
	//   - EntityRows: 实体行，例如 [{"track_id": 1001}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["track_attrs:author_id", "track_attrs:release_key"]
	Features []string

	// EntityRows 实体行，例如 [{"track_id": 1001}, {"track_id": 1002}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，覆盖客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征向量。
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}
