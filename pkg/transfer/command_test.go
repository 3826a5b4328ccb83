package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCommand(t *testing.T) {
	cmd := extractCommand("/var/www/html", "transfer_20250824_abcd1234.tar.gz")
	assert.Equal(t,
		"cd '/var/www/html' && tar -xzf 'transfer_20250824_abcd1234.tar.gz' && rm 'transfer_20250824_abcd1234.tar.gz'",
		cmd)
}

func TestExtractCommandQuoting(t *testing.T) {
	// 路径里的 shell 元字符必须被引号包裹,不能被远端展开
	cmd := extractCommand("/srv/$(reboot)", "a.tar.gz")
	assert.Contains(t, cmd, "cd '/srv/$(reboot)'")

	cmd = extractCommand("/data/my dir", "a.tar.gz")
	assert.Contains(t, cmd, "cd '/data/my dir'")
}

func TestShellQuoteSingleQuote(t *testing.T) {
	assert.Equal(t, `'dir'\''; rm -rf / #'`, shellQuote("dir'; rm -rf / #"))
	assert.Equal(t, `''`, shellQuote(""))
}
