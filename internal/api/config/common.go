package config

// Config 配置主体
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	Mongo                MongoConfig          `mapstructure:"mongo"`
	LLM                  LLMConfig            `mapstructure:"llm"`
	Cron                 CronConfig           `mapstructure:"cron"`
	RateLimit            RateLimitConfig      `mapstructure:"rate_limit"`
	Push                 PushConfig           `mapstructure:"push"`
	Logstash             LogstashConfig       `mapstructure:"logstash"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaSubjectConsumer KafkaSubjectConsumer `mapstructure:"kafka_subject_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
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

// MongoConfig 生成审计日志存储配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type LLMConfig struct {
	URL            string           `mapstructure:"url"`
	Model          string           `mapstructure:"model"`
	ApiKey         string           `mapstructure:"api_key"`
	AttemptTimeout int              `mapstructure:"attempt_timeout"`
	MaxContentLen  int              `mapstructure:"max_content_len"`
	PromptsPath    PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	Fortune string `mapstructure:"fortune"`
	Match   string `mapstructure:"match"`
}

// CronConfig 定时任务表达式，个人运势先跑，配对批次晚几分钟
type CronConfig struct {
	FortuneSpec string `mapstructure:"fortune_spec"`
	MatchSpec   string `mapstructure:"match_spec"`
}

// RateLimitConfig 用户触发路径限流（每分钟次数）
type RateLimitConfig struct {
	FortunePerMin int `mapstructure:"fortune_per_min"`
	UserPerMin    int `mapstructure:"user_per_min"`
}

// PushConfig 推送网关配置
type PushConfig struct {
	Enable bool   `mapstructure:"enable"`
	URL    string `mapstructure:"url"`
	ApiKey string `mapstructure:"api_key"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
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

type KafkaSubjectConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
