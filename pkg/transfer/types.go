package transfer

import "example.com/MikuPush/pkg/models"

// Stage 传输生命周期阶段
type Stage string

const (
	StageStarted    Stage = "started"
	StageArchiving  Stage = "archiving"
	StageConnecting Stage = "connecting"
	StageUploading  Stage = "uploading"
	StageExtracting Stage = "extracting"
	StageCompleted  Stage = "completed"
	StageFailed     Stage = "failed"
)

// Request 一次完整传输的全部输入
type Request struct {
	Host      string
	Port      uint16
	Identity  models.Identity
	Sources   []string // 待打包的本地文件/目录
	RemoteDir string
	Extract   bool // 上传后是否在远端解压
}

// Event 传输过程中对外发布的状态事件
// Uploading 阶段会重复发布以携带进度,其余阶段每个至多一次
type Event struct {
	Stage   Stage
	Message string
	Bytes   int64 // 已上传字节数,仅 Uploading 阶段有效
	Total   int64 // 归档总字节数,仅 Uploading 阶段有效
	Err     *Error
}

// Terminal 终态事件之后通道即关闭
func (e Event) Terminal() bool {
	return e.Stage == StageCompleted || e.Stage == StageFailed
}
