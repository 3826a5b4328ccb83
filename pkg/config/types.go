package config

import "example.com/MikuPush/pkg/models"

// Configuration 对应 yaml 配置文件的顶层结构
type Configuration struct {
	Profiles map[string]models.Profile `yaml:"profiles"`
}

// Find 匹配用户输入:先按配置名精确匹配,再按别名匹配
// 未命中返回空字符串
func (c *Configuration) Find(input string) string {
	if input == "" {
		return ""
	}
	if _, ok := c.Profiles[input]; ok {
		return input
	}
	for name, p := range c.Profiles {
		for _, alias := range p.Alias {
			if alias == input {
				return name
			}
		}
	}
	return ""
}

// Resolve 按配置名或别名查找 Profile
func (c *Configuration) Resolve(input string) (models.Profile, bool) {
	name := c.Find(input)
	if name == "" {
		return models.Profile{}, false
	}
	return c.Profiles[name], true
}
