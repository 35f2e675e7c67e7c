package config

import (
	"github.com/cropchain/sync-service/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链配置
type ChainConfig struct {
	ChainType       string `mapstructure:"chain_type"`       // 链类型 (ethereum, polygon, etc.)
	ChainId         int64  `mapstructure:"chain_id"`         // 链ID
	RpcUrl          string `mapstructure:"rpc_url"`          // RPC节点URL
	PrivateKey      string `mapstructure:"private_key"`      // 签名私钥
	ContractAddress string `mapstructure:"contract_address"` // 投资合约地址
	CallTimeout     int    `mapstructure:"call_timeout"`     // 只读调用超时（秒）
	ConfirmTimeout  int    `mapstructure:"confirm_timeout"`  // 交易确认超时（秒）
}

// SyncConfig 批量同步配置
type SyncConfig struct {
	Interval             int  `mapstructure:"interval"`               // 定时同步间隔（秒）
	RetryCount           int  `mapstructure:"retry_count"`            // 传输错误重试次数
	RetryBackoff         int  `mapstructure:"retry_backoff"`          // 初始退避时间（秒）
	RequireFarmerAddress bool `mapstructure:"require_farmer_address"` // 缺少农户钱包地址时拒绝同步
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cropsync")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "cropchain")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.chain_type", "ethereum")
	viper.SetDefault("chain.chain_id", 31337)
	viper.SetDefault("chain.rpc_url", "http://127.0.0.1:8545")
	viper.SetDefault("chain.call_timeout", 10)
	viper.SetDefault("chain.confirm_timeout", 120)
	viper.SetDefault("sync.interval", 60)
	viper.SetDefault("sync.retry_count", 3)
	viper.SetDefault("sync.retry_backoff", 5)
	viper.SetDefault("sync.require_farmer_address", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
