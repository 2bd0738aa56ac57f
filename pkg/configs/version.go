package configs

// AppName 应用名称，用于日志与指标的 service 标识.
const AppName = "vestvault"

// AppVersion 应用版本，构建时可通过 -ldflags 覆盖.
var AppVersion = "0.2.0"
