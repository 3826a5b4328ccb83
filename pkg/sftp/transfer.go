package sftp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Upload 将单个本地文件上传到远程目录,返回远程完整路径
// 远程目录不存在时会逐级创建
func (c *Client) Upload(ctx context.Context, localPath, remoteDir string, progress ProgressCallback) (string, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("读取本地文件信息失败: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("'%s' 是目录,只支持上传单个文件", localPath)
	}

	if err := c.sftpClient.MkdirAll(remoteDir); err != nil {
		return "", fmt.Errorf("创建远程目录失败: %w", err)
	}

	remotePath := c.JoinPath(remoteDir, filepath.Base(localPath))

	srcFile, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("打开本地文件失败: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := c.sftpClient.Create(remotePath)
	if err != nil {
		return "", fmt.Errorf("创建远程文件失败: %w", err)
	}
	defer dstFile.Close()

	if err := streamTransfer(ctx, srcFile, dstFile, progress); err != nil {
		return "", err
	}
	return remotePath, nil
}

// streamTransfer 简单的流式传输,每个分块之间检查取消
// 取消时中止传输,已写入远端的部分不做清理
func streamTransfer(ctx context.Context, r io.Reader, w io.Writer, progress ProgressCallback) error {
	buf := make([]byte, chunkSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, wErr := w.Write(buf[:n]); wErr != nil {
				return fmt.Errorf("写入远程文件失败: %w", wErr)
			}
			if progress != nil {
				progress(n)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("读取本地文件失败: %w", err)
		}
	}
}
