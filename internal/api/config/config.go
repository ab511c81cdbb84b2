package config

// Config 配置主体
type Config struct {
	Server                Server          `mapstructure:"server"`
	DB                    DBConfig        `mapstructure:"database"`
	Redis                 RedisConfig     `mapstructure:"redis"`
	MinIO                 MinIOConfig     `mapstructure:"minio"`
	Kafka                 KafkaConfig     `mapstructure:"kafka"`
	KafkaPlaybackConsumer KafkaConsumer   `mapstructure:"kafka_playback_consumer"`
	Analytics             AnalyticsConfig `mapstructure:"analytics"`
	Ranking               RankingConfig   `mapstructure:"ranking"`
}

// Server Server配置
type Server struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// AnalyticsConfig 曝光分析上报，URL 为空时关闭
type AnalyticsConfig struct {
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"`
}

// RankingConfig 排序引擎自身的固定调参，不属于权重文档
type RankingConfig struct {
	JitterScale          float64 `mapstructure:"jitter_scale"`
	WeightsCacheTTL      int     `mapstructure:"weights_cache_ttl"`
	AffinitySeedLimit    int     `mapstructure:"affinity_seed_limit"`
	CoEngagementRowLimit int     `mapstructure:"co_engagement_row_limit"`
}
