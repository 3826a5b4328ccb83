package sftp

const chunkSize = 32 * 1024 // 32KB SFTP 默认包大小优化

// ProgressCallback 进度回调,n 为本次增量传输的字节数
// 回调在传输所在的 goroutine 上同步执行
type ProgressCallback func(n int)
