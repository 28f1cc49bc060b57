package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App             `json:"app" yaml:"app"`
	Server    *Server          `json:"server" yaml:"server"`
	MySQL     *MySQL           `json:"mysql" yaml:"mysql"`
	Redis     *Redis           `json:"redis" yaml:"redis"`
	RabbitMQ  *RabbitMQConfig  `json:"rabbitmq" yaml:"rabbitmq"`
	Smtp      *SmtpConfig      `json:"smtp" yaml:"smtp"`
	Jwt       *Jwt             `json:"jwt" yaml:"jwt"`
	Store     *StoreConfig     `json:"store" yaml:"store"`
	RateLimit *RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(fmt.Sprintf("parse config file %s error: %v", filename, err))
	}

	return &conf
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
