package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"example.com/MikuPush/pkg/archive"
	"example.com/MikuPush/pkg/ssh"
)

// 事件通道带缓冲,避免消费方短暂落后时阻塞传输
const eventBuffer = 64

// Worker 执行一次完整的打包-上传-解压流程,并通过事件通道上报进度
// 一个 Worker 只能 Run 一次,通道在终态事件后关闭
type Worker struct {
	dial    DialFunc
	archive func(paths []string) (*archive.Artifact, error)
	log     *slog.Logger
	events  chan Event
}

// Option 配置 Worker,主要用于测试替换外部依赖
type Option func(*Worker)

// WithDialFunc 替换会话建立方式
func WithDialFunc(dial DialFunc) Option {
	return func(w *Worker) { w.dial = dial }
}

// WithArchiveFunc 替换归档实现
func WithArchiveFunc(fn func(paths []string) (*archive.Artifact, error)) Option {
	return func(w *Worker) { w.archive = fn }
}

func NewWorker(log *slog.Logger, opts ...Option) *Worker {
	w := &Worker{
		dial:    Dial,
		archive: archive.Create,
		log:     log,
		events:  make(chan Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events 返回只读事件通道,Run 结束后通道关闭
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Run 按阶段顺序执行传输,无论成败,本地临时归档和远程会话都会被清理
// 清理失败只记录日志,不影响已经得出的结果
func (w *Worker) Run(ctx context.Context, req Request) error {
	defer close(w.events)

	var (
		artifact *archive.Artifact
		session  Session
	)
	defer func() {
		if session != nil {
			if err := session.Close(); err != nil {
				w.log.Warn("关闭远程会话失败", "error", err)
			}
		}
		if artifact != nil {
			if err := os.Remove(artifact.Path); err != nil && !os.IsNotExist(err) {
				w.log.Warn("删除本地临时归档失败", "path", artifact.Path, "error", err)
			}
		}
	}()

	w.emit(Event{Stage: StageStarted, Message: fmt.Sprintf("开始传输到 %s:%d", req.Host, req.Port)})

	// 打包
	w.emit(Event{Stage: StageArchiving, Message: "正在打包本地文件"})
	art, err := w.archive(req.Sources)
	if err != nil {
		return w.fail(newError(KindInput, err))
	}
	artifact = art
	w.log.Debug("归档完成", "path", art.Path, "size", art.Size)

	if err := ctx.Err(); err != nil {
		return w.fail(newError(KindConnect, err))
	}

	// 连接
	w.emit(Event{Stage: StageConnecting, Message: fmt.Sprintf("正在连接 %s:%d", req.Host, req.Port)})
	sess, err := w.dial(ctx, req.Host, req.Port, req.Identity)
	if err != nil {
		if errors.Is(err, ssh.ErrAuthFailed) {
			return w.fail(newError(KindAuth, err))
		}
		return w.fail(newError(KindConnect, err))
	}
	session = sess

	if err := ctx.Err(); err != nil {
		return w.fail(newError(KindTransfer, err))
	}

	// 上传
	w.emit(Event{Stage: StageUploading, Message: "正在上传归档", Bytes: 0, Total: art.Size})
	var sent int64
	_, err = session.Upload(ctx, art.Path, req.RemoteDir, func(n int) {
		sent += int64(n)
		w.emit(Event{Stage: StageUploading, Bytes: sent, Total: art.Size})
	})
	if err != nil {
		return w.fail(newError(KindTransfer, err))
	}
	w.log.Debug("上传完成", "bytes", sent)

	// 解压
	if req.Extract {
		if err := ctx.Err(); err != nil {
			return w.fail(newError(KindRemoteCommand, err))
		}
		w.emit(Event{Stage: StageExtracting, Message: "正在远端解压"})
		name := filepath.Base(art.Path)
		res, err := session.Run(ctx, extractCommand(req.RemoteDir, name))
		if err != nil {
			return w.fail(newError(KindRemoteCommand, err))
		}
		if res.ExitCode != 0 {
			return w.fail(&Error{
				Kind:   KindRemoteCommand,
				Stderr: res.Stderr,
				Err:    fmt.Errorf("远程解压失败,退出码 %d", res.ExitCode),
			})
		}
	}

	w.emit(Event{Stage: StageCompleted, Message: "传输完成"})
	return nil
}

func (w *Worker) emit(e Event) {
	w.events <- e
}

// fail 发布唯一的终态失败事件并返回该错误
func (w *Worker) fail(err *Error) error {
	w.log.Debug("传输失败", "kind", err.Kind, "error", err.Err)
	w.emit(Event{Stage: StageFailed, Message: err.Error(), Err: err})
	return err
}
