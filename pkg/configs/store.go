package configs

import (
	"github.com/spf13/viper"
)

// StoreType 归属计划存储后端类型.
type StoreType string

const (
	StoreTypeFile      StoreType = "file"
	StoreTypeFirestore StoreType = "firestore"
	StoreTypeRedis     StoreType = "redis"
	StoreTypeDB        StoreType = "db"
	StoreTypeS3        StoreType = "s3"
	StoreTypeNATS      StoreType = "nats"

	// DefaultStoreCollection 默认集合名，每个文档对应一个 vault.
	DefaultStoreCollection = "vesting_configs"
)

// StoreConfig 归属计划存储配置，决定从哪个后端读取各 vault 的 token 计划.
type StoreConfig struct {
	Type       StoreType            `mapstructure:"type"       rule:"oneof=file firestore redis db s3 nats"`
	Collection string               `mapstructure:"collection" rule:"required"`
	File       FileStoreConfig      `mapstructure:"file"`
	Firestore  FirestoreStoreConfig `mapstructure:"firestore"`
	Redis      RedisStoreConfig     `mapstructure:"redis"`
	S3         S3StoreConfig        `mapstructure:"s3"`
	NATS       NATSStoreConfig      `mapstructure:"nats"`
}

// FileStoreConfig 本地文件存储配置，主要用于开发与测试.
type FileStoreConfig struct {
	Path string `mapstructure:"path" rule:"required"`
}

// FirestoreStoreConfig Firestore 存储配置.
type FirestoreStoreConfig struct {
	ProjectID       string `mapstructure:"project_id"       rule:"required"`
	Database        string `mapstructure:"database"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// RedisStoreConfig Redis 存储配置，每个 vault 文档存为一个 JSON 字符串键.
type RedisStoreConfig struct {
	Addr      string `mapstructure:"addr"       rule:"hostname_port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"         rule:"min=0,max=15"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// S3StoreConfig 对象存储后端的附加配置，桶与连接信息复用顶层 S3Config.
type S3StoreConfig struct {
	ObjectPrefix string `mapstructure:"object_prefix"`
}

// NATSStoreConfig NATS JetStream KV 存储配置.
type NATSStoreConfig struct {
	URL      string `mapstructure:"url"      rule:"hostname_port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Bucket   string `mapstructure:"bucket"   rule:"required"`
}

// GetStoreType 返回当前配置的存储后端类型.
func (c *StoreConfig) GetStoreType() StoreType {
	return c.Type
}

// setDefaults 设置存储配置的默认值.
func (c *StoreConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("store.type", StoreTypeFile)
	v.SetDefault("store.collection", DefaultStoreCollection)

	// File 默认值
	v.SetDefault("store.file.path", "configs/vesting_configs.json")

	// Firestore 默认值
	v.SetDefault("store.firestore.project_id", "")
	v.SetDefault("store.firestore.database", "")
	v.SetDefault("store.firestore.credentials_file", "")

	// Redis 默认值
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.key_prefix", "vestvault:configs:")

	// S3 默认值
	v.SetDefault("store.s3.object_prefix", "vesting_configs/")

	// NATS 默认值
	v.SetDefault("store.nats.url", "localhost:4222")
	v.SetDefault("store.nats.user", "")
	v.SetDefault("store.nats.password", "")
	v.SetDefault("store.nats.bucket", "vestvault-configs")
}
