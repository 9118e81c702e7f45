package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config cấu hình ứng dụng
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Consul    ConsulConfig    `json:"consul"`
	Jaeger    JaegerConfig    `json:"jaeger"`
	Log       LogConfig       `json:"log"`
	Auth      AuthConfig      `json:"auth"`
	Scheduler SchedulerConfig `json:"scheduler"`
}

// ServerConfig cấu hình service
type ServerConfig struct {
	Name     string `json:"name"`      // tên service
	Host     string `json:"host"`      // địa chỉ bind
	Port     int    `json:"port"`      // cổng chính
	GRPCPort int    `json:"grpc_port"` // cổng gRPC
	HTTPPort int    `json:"http_port"` // cổng HTTP
}

// DatabaseConfig cấu hình MySQL
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	MaxIdle  int    `json:"max_idle"` // số kết nối idle tối đa
	MaxOpen  int    `json:"max_open"` // số kết nối mở tối đa
}

// ConsulConfig cấu hình Consul
type ConsulConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// JaegerConfig cấu hình Jaeger
type JaegerConfig struct {
	Endpoint string  `json:"endpoint"`
	Sampler  float64 `json:"sampler"` // tỉ lệ sampling 0.0-1.0
}

// LogConfig cấu hình log
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
	Output string `json:"output"` // stdout, file
	Path   string `json:"path"`   // đường dẫn file log
}

// AuthConfig cấu hình xác thực JWT (HS256)
type AuthConfig struct {
	Enabled       bool                `json:"enabled"`
	JWTSecret     string              `json:"jwt_secret"`
	Issuer        string              `json:"issuer"`
	Audience      string              `json:"audience"`
	PublicMethods []string            `json:"public_methods"` // các method/route không cần token
	RBAC          map[string][]string `json:"rbac"`           // method/route -> roles yêu cầu
}

// SchedulerConfig cấu hình vòng quét nhắc nhở bảo dưỡng.
// Thresholds: ngưỡng "sắp đến hạn" theo từng loại bảo dưỡng (km).
// DailyUsageKm: quãng đường trung bình mỗi ngày, dùng quy đổi km còn lại ra ngày.
type SchedulerConfig struct {
	IntervalSeconds int            `json:"interval_seconds"`
	DailyUsageKm    int            `json:"daily_usage_km"`
	Thresholds      map[string]int `json:"thresholds"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// LoadConfig đọc cấu hình từ file JSON (chỉ load một lần)
func LoadConfig(configPath string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		globalConfig = &Config{}
		// File không tồn tại thì dùng cấu hình mặc định (dev)
		if _, err = os.Stat(configPath); os.IsNotExist(err) {
			logrus.Warnf("Config file not found: %s, using default config", configPath)
			globalConfig = defaultConfig()
			err = nil
			return
		}

		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			err = fmt.Errorf("failed to read config file: %w", readErr)
			return
		}

		if unmarshalErr := json.Unmarshal(data, globalConfig); unmarshalErr != nil {
			err = fmt.Errorf("failed to parse config file: %w", unmarshalErr)
			return
		}
	})

	if err != nil {
		return nil, err
	}

	return globalConfig, nil
}

// GetConfig lấy cấu hình toàn cục
func GetConfig() *Config {
	if globalConfig == nil {
		return defaultConfig()
	}
	return globalConfig
}

// defaultConfig cấu hình mặc định (môi trường dev)
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:     "fleet-service",
			Host:     "0.0.0.0",
			Port:     8080,
			GRPCPort: 50051,
			HTTPPort: 8080,
		},
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			User:     "root",
			Password: "root",
			Database: "xecuaban",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		Consul: ConsulConfig{
			Host: "localhost",
			Port: 8500,
		},
		Jaeger: JaegerConfig{
			Endpoint: "http://localhost:14268/api/traces",
			Sampler:  1.0,
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "text",
			Output: "stdout",
			Path:   "logs/app.log",
		},
		Auth: AuthConfig{
			Enabled:  false,
			Issuer:   "xecuaban",
			Audience: "xecuaban",
		},
		Scheduler: SchedulerConfig{
			IntervalSeconds: 3600,
			DailyUsageKm:    30,
		},
	}
}
