package config

import (
	"fmt"
	"os"
	"path/filepath"

	"example.com/MikuPush/pkg/crypto"
	"example.com/MikuPush/pkg/models"
	"gopkg.in/yaml.v3"
)

type Store interface {
	Load() (*Configuration, error)
	Save(cfg *Configuration) error
}

type defaultStore struct {
	path string
	key  []byte // 用于加解密配置文件中的敏感字段
}

// NewDefaultStore 创建基于 yaml 文件的配置存储
// keyPath 指向字段加密密钥文件,不存在时自动生成
func NewDefaultStore(path, keyPath string) (Store, error) {
	key, err := crypto.LoadOrGenerateKey(keyPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置加密密钥失败: %w", err)
	}
	return &defaultStore{path: path, key: key}, nil
}

// Load 读取配置文件并解密敏感字段
// 配置文件不存在时返回空配置,而不是错误
func (s *defaultStore) Load() (*Configuration, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Configuration{Profiles: map[string]models.Profile{}}, nil
		}
		return nil, err
	}

	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]models.Profile{}
	}

	crypter, err := crypto.NewCrypter(s.key)
	if err != nil {
		return nil, err
	}
	for name, p := range cfg.Profiles {
		if p.Identity.Password, err = decryptField(crypter, p.Identity.Password); err != nil {
			return nil, fmt.Errorf("解密配置 '%s' 的密码失败: %w", name, err)
		}
		if p.Identity.Passphrase, err = decryptField(crypter, p.Identity.Passphrase); err != nil {
			return nil, fmt.Errorf("解密配置 '%s' 的私钥密码失败: %w", name, err)
		}
		cfg.Profiles[name] = p
	}
	return &cfg, nil
}

// Save 加密敏感字段后写入配置文件,权限 0600
func (s *defaultStore) Save(cfg *Configuration) error {
	crypter, err := crypto.NewCrypter(s.key)
	if err != nil {
		return err
	}

	// 拷贝一份再加密,避免污染调用方持有的明文配置
	out := Configuration{Profiles: make(map[string]models.Profile, len(cfg.Profiles))}
	for name, p := range cfg.Profiles {
		if p.Identity.Password, err = encryptField(crypter, p.Identity.Password); err != nil {
			return fmt.Errorf("加密配置 '%s' 的密码失败: %w", name, err)
		}
		if p.Identity.Passphrase, err = encryptField(crypter, p.Identity.Passphrase); err != nil {
			return fmt.Errorf("加密配置 '%s' 的私钥密码失败: %w", name, err)
		}
		out.Profiles[name] = p
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func encryptField(c *crypto.Crypter, value string) (string, error) {
	if value == "" || crypto.IsEncrypted(value) {
		return value, nil
	}
	return c.Encrypt(value)
}

func decryptField(c *crypto.Crypter, value string) (string, error) {
	if !crypto.IsEncrypted(value) {
		return value, nil
	}
	return c.Decrypt(value)
}
