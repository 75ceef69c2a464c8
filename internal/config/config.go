package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	IsDebug  bool   `yaml:"is_debug" env-default:"false"`
	TimeZone string `yaml:"time_zone" env-default:"UTC"`
	Listen   struct {
		BindIP   string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env-default:"5000"`
		TLS      bool   `yaml:"tls_enabled" env-default:"false"`
		CertFile string `yaml:"cert_file" env-default:""`
		KeyFile  string `yaml:"key_file" env-default:""`
		ApiKey   string `yaml:"api_key" env-default:""`
	} `yaml:"listen"`
	Api struct {
		Url               string `yaml:"url" env-default:""`
		Key               string `yaml:"key" env-default:""`
		PartnerIdentifier string `yaml:"partner_identifier" env-default:""`
		ClientId          string `yaml:"client_id" env-default:""`
		TimeoutSeconds    int    `yaml:"timeout_seconds" env-default:"10"`
		MaxRetries        int    `yaml:"max_retries" env-default:"2"`
	} `yaml:"api"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"localhost"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"oioi"`
	} `yaml:"mongo"`
	Pusher struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		AppID   string `yaml:"app_id" env-default:""`
		Key     string `yaml:"key" env-default:""`
		Secret  string `yaml:"secret" env-default:""`
		Cluster string `yaml:"cluster" env-default:""`
	} `yaml:"pusher"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env-default:""`
	} `yaml:"telegram"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		BindIP  string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port    string `yaml:"port" env-default:"9100"`
	} `yaml:"metrics"`
}

var instance *Config
var once sync.Once

func GetConfig() (*Config, error) {
	var err error
	once.Do(func() {
		log.Println("reading config")
		instance = &Config{}
		if err = cleanenv.ReadConfig("config.yml", instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Println(desc)
			log.Println(err)
			instance = nil
		}
	})
	return instance, err
}
