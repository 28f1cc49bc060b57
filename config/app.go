package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
}

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// ExpireDays 令牌有效期, 单位天
	ExpireDays int `json:"expire_days" yaml:"expire_days"`
}

// StoreConfig 店铺相关的固定配置
type StoreConfig struct {
	Name           string `json:"name" yaml:"name"`
	AdminEmail     string `json:"admin_email" yaml:"admin_email"`
	AdminName      string `json:"admin_name" yaml:"admin_name"`
	AdminPassword  string `json:"admin_password" yaml:"admin_password"`
	ClientURL      string `json:"client_url" yaml:"client_url"`
	UploadDir      string `json:"upload_dir" yaml:"upload_dir"`
	SupportEmail   string `json:"support_email" yaml:"support_email"`
	AffiliateEmail string `json:"affiliate_email" yaml:"affiliate_email"`
}
