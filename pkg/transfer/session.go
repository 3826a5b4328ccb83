package transfer

import (
	"context"

	"example.com/MikuPush/pkg/models"
	"example.com/MikuPush/pkg/sftp"
	"example.com/MikuPush/pkg/ssh"
)

// Session 一条已建立的远程会话,同时承载文件上传与命令执行
type Session interface {
	Upload(ctx context.Context, localPath, remoteDir string, progress sftp.ProgressCallback) (string, error)
	Run(ctx context.Context, command string) (ssh.Result, error)
	Close() error
}

// DialFunc 建立会话的工厂,测试时可替换
type DialFunc func(ctx context.Context, host string, port uint16, identity models.Identity) (Session, error)

// Dial 默认实现: SSH 拨号后在同一连接上打开 SFTP 子系统
func Dial(ctx context.Context, host string, port uint16, identity models.Identity) (Session, error) {
	auth, err := ssh.FromIdentity(identity)
	if err != nil {
		return nil, err
	}
	sshCli, err := ssh.Dial(ctx, host, port, identity.User, auth)
	if err != nil {
		return nil, err
	}
	sftpCli, err := sftp.NewClient(sshCli)
	if err != nil {
		sshCli.Close()
		return nil, err
	}
	return &sshSession{ssh: sshCli, sftp: sftpCli}, nil
}

type sshSession struct {
	ssh  *ssh.Client
	sftp *sftp.Client
}

func (s *sshSession) Upload(ctx context.Context, localPath, remoteDir string, progress sftp.ProgressCallback) (string, error) {
	return s.sftp.Upload(ctx, localPath, remoteDir, progress)
}

func (s *sshSession) Run(ctx context.Context, command string) (ssh.Result, error) {
	return s.ssh.Run(ctx, command)
}

// Close 先关 SFTP 子系统再关底层 SSH 连接
func (s *sshSession) Close() error {
	sftpErr := s.sftp.Close()
	sshErr := s.ssh.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return sshErr
}
