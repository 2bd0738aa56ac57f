package types

// HealthResponse 服务级健康信息.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Store   string `json:"store"`   // 配置存储后端类型
	Secrets string `json:"secrets"` // 密钥提供方
	Jobs    int    `json:"jobs"`    // 调度中的归属计划数
}

// ComponentHealth 单个基础组件的健康信息.
type ComponentHealth struct {
	Component string `json:"component"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
