package config

import (
	"fmt"

	"example.com/MikuPush/pkg/models"
	"gopkg.in/yaml.v3"
)

// Export 序列化全部配置为可迁移的 yaml 导出件
// 加密密钥与本机绑定,密文跨机无法解开,因此密码与私钥密码不随导出件流出,导入后需重新录入
func Export(cfg *Configuration) ([]byte, error) {
	out := Configuration{Profiles: make(map[string]models.Profile, len(cfg.Profiles))}
	for name, p := range cfg.Profiles {
		p.Identity.Password = ""
		p.Identity.Passphrase = ""
		out.Profiles[name] = p
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("序列化配置失败: %w", err)
	}
	return data, nil
}

// Import 解析导出件并合并进现有配置,同名配置被覆盖
// 返回导入的配置数量
func Import(cfg *Configuration, data []byte) (int, error) {
	var in Configuration
	if err := yaml.Unmarshal(data, &in); err != nil {
		return 0, fmt.Errorf("解析导入文件失败: %w", err)
	}
	for name, p := range in.Profiles {
		cfg.Profiles[name] = p
	}
	return len(in.Profiles), nil
}
