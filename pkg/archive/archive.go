package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Artifact 描述一次传输产生的临时归档
// 归档由 transfer.Worker 独占,并保证在传输结束前删除
type Artifact struct {
	Path string // 本地临时文件的完整路径
	Name string // 归档文件名,也是远程落盘的文件名
	Size int64  // 字节大小
}

// Create 将若干本地路径打包为 OS 临时目录下的单个 tar.gz
// 归档内条目以各输入路径的 basename 为根,目录输入保留相对结构
// 任一路径不存在或不可读时打包失败
func Create(paths []string) (*Artifact, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("没有可打包的文件")
	}

	name := fmt.Sprintf("transfer_%s_%s.tar.gz",
		time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(os.TempDir(), name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("创建临时归档失败: %w", err)
	}

	if err := writeAll(f, paths); err != nil {
		f.Close()
		// 半成品归档没有保留价值
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("写入临时归档失败: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Artifact{Path: path, Name: name, Size: info.Size()}, nil
}

func writeAll(f *os.File, paths []string) error {
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)

	for _, p := range paths {
		if err := addPath(tw, p); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gw.Close()
}

// addPath 把单个文件或目录加入归档
func addPath(tw *tar.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("读取本地路径失败: %w", err)
	}

	base := filepath.Base(filepath.Clean(path))
	if !info.IsDir() {
		return addFile(tw, path, base, info)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		name := base
		if rel != "." {
			name = filepath.ToSlash(filepath.Join(base, rel))
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			hdr, err := tar.FileInfoHeader(fi, "")
			if err != nil {
				return err
			}
			hdr.Name = name + "/"
			return tw.WriteHeader(hdr)
		}
		if !fi.Mode().IsRegular() {
			// 跳过 socket、设备文件等特殊文件
			return nil
		}
		return addFile(tw, p, name, fi)
	})
}

func addFile(tw *tar.Writer, path, name string, info fs.FileInfo) error {
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("读取本地文件失败: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("写入归档失败: %w", err)
	}
	return nil
}
