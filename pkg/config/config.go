package config

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppConfig struct {
	// live handles, attached during server preparation
	ORM    *gorm.DB       `yaml:"-"`
	RDS    *redis.Client  `yaml:"-"`
	Logger *logrus.Logger `yaml:"-"`

	RootWorkingDir string `yaml:"-"`

	Client         ClientInfo     `yaml:"client"`
	LogSettings    LogSettings    `yaml:"log_settings"`
	DatabaseInfo   DatabaseInfo   `yaml:"database_info"`
	RedisInfo      RedisInfo      `yaml:"redis_info"`
	WhiteboardInfo WhiteboardInfo `yaml:"whiteboard_info"`
	RecordingInfo  RecordingInfo  `yaml:"recording_info"`
}

type ClientInfo struct {
	Port           int            `yaml:"port"`
	Debug          bool           `yaml:"debug"`
	ApiKey         string         `yaml:"api_key"`
	Secret         string         `yaml:"secret"`
	TokenValidity  *time.Duration `yaml:"token_validity"`
	ProxyHeader    string         `yaml:"proxy_header"`
	WebhookConf    WebhookConf    `yaml:"webhook_conf"`
	PrometheusConf PrometheusConf `yaml:"prometheus"`
}

type WebhookConf struct {
	Enable bool   `yaml:"enable"`
	Url    string `yaml:"url,omitempty"`
}

type PrometheusConf struct {
	Enable      bool   `yaml:"enable"`
	MetricsPath string `yaml:"metrics_path"`
}

type LogSettings struct {
	LogFile    string `yaml:"log_file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	LogLevel   string `yaml:"log_level"`
	JSONFormat bool   `yaml:"json_format"`
}

type DatabaseInfo struct {
	Host     string `yaml:"host"`
	Port     int32  `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"db"`
	Loglevel string `yaml:"loglevel"`
}

type RedisInfo struct {
	Host              string   `yaml:"host"`
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	DBName            int      `yaml:"db"`
	UseTLS            bool     `yaml:"use_tls"`
	SentinelAddresses []string `yaml:"sentinel_addresses"`
	MasterName        string   `yaml:"master_name"`
}

// WhiteboardInfo configures the remote whiteboard provider used for rooms,
// conversion tasks and signed access tokens.
type WhiteboardInfo struct {
	Host           string         `yaml:"host"`
	AccessKey      string         `yaml:"access_key"`
	SecretKey      string         `yaml:"secret_key"`
	Region         string         `yaml:"region"`
	TokenValidity  *time.Duration `yaml:"token_validity"`
	RequestTimeout *time.Duration `yaml:"request_timeout"`
}

// RecordingInfo holds what is needed to build playback URLs for finished
// recording sessions.
type RecordingInfo struct {
	PlaybackPrefix string `yaml:"playback_prefix"`
	PlaybackFolder string `yaml:"playback_folder"`
}

var appCnf *AppConfig

func SetAppConfig(c *AppConfig) {
	appCnf = c
}

func GetConfig() *AppConfig {
	return appCnf
}
