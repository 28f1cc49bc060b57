package config

// RabbitMQConfig 通知队列配置
type RabbitMQConfig struct {
	URL string `json:"url" yaml:"url"`
}

// SmtpConfig 邮件发送配置
type SmtpConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
}
