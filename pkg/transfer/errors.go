package transfer

import "fmt"

// Kind 错误分类,调用方据此决定提示文案
type Kind string

const (
	KindInput         Kind = "input"          // 本地输入无效或打包失败
	KindAuth          Kind = "auth"           // 认证被拒
	KindConnect       Kind = "connect"        // 主机不可达或握手失败
	KindTransfer      Kind = "transfer"       // 上传中断
	KindRemoteCommand Kind = "remote_command" // 远端解压命令失败
	KindCleanup       Kind = "cleanup"        // 清理失败 (只记录,不致命)
)

// Error 带分类的传输错误
type Error struct {
	Kind   Kind
	Stderr string // 远端命令的标准错误输出,仅 KindRemoteCommand 时填充
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
