package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`

		// 5xx responses are reported here when set
		ErrNotifyURL string `default:"" env:"APP_ERR_NOTIFY_URL"`
		BodyLimitKB  int64  `default:"1024" env:"APP_BODY_LIMIT_KB"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruit" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Redis struct {
		Addr             string `default:"" env:"REDIS_ADDR"`
		Password         string `default:"" env:"REDIS_PASSWORD"`
		DB               int    `default:"0" env:"REDIS_DB"`
		EventStream      string `default:"recruit:events" env:"REDIS_EVENT_STREAM"`
		JobCacheTTLInSec int    `default:"3600" env:"REDIS_JOB_CACHE_TTL_IN_SEC"`
	}
	Notify struct {
		SenderName string `default:"Recruit" env:"NOTIFY_SENDER_NAME"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
