package sftp

import (
	"fmt"

	"example.com/MikuPush/pkg/ssh"
	"github.com/pkg/sftp"
)

// Client 包装 sftp.Client
// 底层 SSH 连接的生命周期由调用方管理
type Client struct {
	sftpClient *sftp.Client
}

// NewClient 基于已建立的 SSH 连接打开 SFTP 子系统
// 复用同一条认证连接,不额外拨号
func NewClient(sshCli *ssh.Client) (*Client, error) {
	client, err := sftp.NewClient(sshCli.SSHClient())
	if err != nil {
		return nil, fmt.Errorf("打开 SFTP 子系统失败: %w", err)
	}
	return &Client{sftpClient: client}, nil
}

// Close 关闭 SFTP 会话 (不关闭底层的 SSH 连接)
func (c *Client) Close() error {
	return c.sftpClient.Close()
}

// JoinPath 处理远程路径拼接 (SFTP 协议强制使用 forward slash)
func (c *Client) JoinPath(elem ...string) string {
	return c.sftpClient.Join(elem...)
}
