package models

// 认证方式
const (
	AuthPassword = "password"
	AuthKey      = "key"
)

// Identity 定义认证信息
type Identity struct {
	User       string `yaml:"user"`
	AuthType   string `yaml:"auth_type"`            // "password", "key"
	Password   string `yaml:"password,omitempty"`   // 登录密码
	KeyPath    string `yaml:"key_path,omitempty"`   // 私钥文件路径
	Passphrase string `yaml:"passphrase,omitempty"` // 私钥密码
}

// Profile 持久化的连接配置,聚合了主机信息与认证信息
// 密码与私钥密码在磁盘上加密保存,加载后为明文
type Profile struct {
	Alias     []string `yaml:"alias,omitempty"`
	Address   string   `yaml:"address"` // IP 或 域名
	Port      uint16   `yaml:"port"`
	Identity  Identity `yaml:"identity"`
	RemoteDir string   `yaml:"remote_dir,omitempty"` // 默认远程目录
	Extract   bool     `yaml:"extract,omitempty"`    // 默认是否在远程解压
}
