package sftp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamTransfer(t *testing.T) {
	src := strings.Repeat("a", chunkSize*2+100)
	var dst bytes.Buffer
	var reported int

	err := streamTransfer(context.Background(), strings.NewReader(src), &dst, func(n int) {
		reported += n
	})
	require.NoError(t, err)
	assert.Equal(t, src, dst.String())
	assert.Equal(t, len(src), reported)
}

func TestStreamTransferNilProgress(t *testing.T) {
	var dst bytes.Buffer
	err := streamTransfer(context.Background(), strings.NewReader("hello"), &dst, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", dst.String())
}

func TestStreamTransferCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst bytes.Buffer
	err := streamTransfer(ctx, strings.NewReader("hello"), &dst, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, dst.Len())
}
