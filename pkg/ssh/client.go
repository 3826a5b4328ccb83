package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

const dialTimeout = 15 * time.Second

// 认证被拒与主机不可达需要区分上报,便于调用方给出准确提示
var (
	ErrAuthFailed    = errors.New("认证失败")
	ErrConnectFailed = errors.New("连接失败")
)

// Client 包装一条已认证的 SSH 连接
type Client struct {
	sshClient *ssh.Client
}

// Result 远程命令的执行结果
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Dial 建立 SSH 连接,单次尝试,失败立即返回
// 认证被拒返回包装了 ErrAuthFailed 的错误,主机不可达或超时返回 ErrConnectFailed
func Dial(ctx context.Context, host string, port uint16, user string, auth AuthMethod) (*Client, error) {
	method, err := auth.GetMethod()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{method},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: 集成 known_hosts 检查
		Timeout:         dialTimeout,
	}

	// 先用 net.Dialer 建立底层连接,保证拨号阶段可被上下文取消
	addr := fmt.Sprintf("%s:%d", host, port)
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}

	ncc, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		if isAuthError(err) {
			return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}
	return &Client{sshClient: ssh.NewClient(ncc, chans, reqs)}, nil
}

// isAuthError 判断握手错误是否属于认证失败
// x/crypto/ssh 没有导出认证错误类型,只能按错误文本判断
func isAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "no supported methods remain")
}

// Close 关闭连接
func (c *Client) Close() error {
	return c.sshClient.Close()
}

// SSHClient 暴露底层的 ssh.Client (供 SFTP 等高级操作使用)
func (c *Client) SSHClient() *ssh.Client {
	return c.sshClient
}

// Run 执行单条远程命令并阻塞等待结束,分别捕获标准输出与标准错误
// 命令非零退出不视为 error,由调用方根据 ExitCode 处理
// 上下文取消时向远端发送 SIGKILL 并返回 ctx 的错误
func (c *Client) Run(ctx context.Context, command string) (Result, error) {
	session, err := c.sshClient.NewSession()
	if err != nil {
		return Result{}, fmt.Errorf("创建会话失败: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Start(command); err != nil {
		return Result{}, fmt.Errorf("启动远程命令失败: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- session.Wait() }()

	select {
	case err := <-done:
		res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
		if err != nil {
			var exitErr *ssh.ExitError
			if errors.As(err, &exitErr) {
				res.ExitCode = exitErr.ExitStatus()
				return res, nil
			}
			return res, fmt.Errorf("远程命令执行失败: %w", err)
		}
		return res, nil
	case <-ctx.Done():
		// 尽力终止远端命令,之后由 defer 关闭会话
		session.Signal(ssh.SIGKILL)
		return Result{Stdout: stdout.String(), Stderr: stderr.String()}, ctx.Err()
	}
}
