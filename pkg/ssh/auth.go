package ssh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"example.com/MikuPush/pkg/models"
	"golang.org/x/crypto/ssh"
)

// AuthMethod 定义获取 SSH 认证方法的接口
type AuthMethod interface {
	GetMethod() (ssh.AuthMethod, error)
}

// PasswordAuth 实现密码认证
type PasswordAuth struct {
	Password string
}

func (p *PasswordAuth) GetMethod() (ssh.AuthMethod, error) {
	return ssh.Password(p.Password), nil
}

// KeyAuth 实现私钥认证,支持带密码的私钥
type KeyAuth struct {
	Path       string
	Passphrase string
}

func (k *KeyAuth) GetMethod() (ssh.AuthMethod, error) {
	keyData, err := os.ReadFile(expandHomeDir(k.Path))
	if err != nil {
		return nil, fmt.Errorf("读取私钥文件失败: %w", err)
	}
	var signer ssh.Signer
	if k.Passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(k.Passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(keyData)
	}
	if err != nil {
		return nil, fmt.Errorf("解析私钥失败: %w", err)
	}
	return ssh.PublicKeys(signer), nil
}

// FromIdentity 根据认证配置选择认证方式
func FromIdentity(id models.Identity) (AuthMethod, error) {
	switch id.AuthType {
	case models.AuthPassword:
		if id.Password == "" {
			return nil, fmt.Errorf("认证方式为密码但密码为空")
		}
		return &PasswordAuth{Password: id.Password}, nil
	case models.AuthKey:
		if id.KeyPath == "" {
			return nil, fmt.Errorf("认证方式为私钥但未提供私钥路径")
		}
		return &KeyAuth{Path: id.KeyPath, Passphrase: id.Passphrase}, nil
	default:
		return nil, fmt.Errorf("不支持的认证方式: %s", id.AuthType)
	}
}

// expandHomeDir 展开 "~" 与 "~/" 前缀的路径
// "~user" 形式不展开,原样交给文件系统
func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
