package transfer

import (
	"fmt"
	"strings"
)

// extractCommand 生成远端解压命令,解压成功后顺带删除归档
// 三段用 && 串联,任一失败整体非零退出
func extractCommand(remoteDir, archiveName string) string {
	return fmt.Sprintf("cd %s && tar -xzf %s && rm %s",
		shellQuote(remoteDir), shellQuote(archiveName), shellQuote(archiveName))
}

// shellQuote 单引号包裹,内部单引号按 POSIX 规则转义
// 防止路径中的元字符被远端 shell 展开
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
