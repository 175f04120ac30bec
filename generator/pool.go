package generator

import (
	"bytes"
	"sync"
)

// Buffer tiers, chosen by the number of declarations or methods a file renders.
const (
	smallBufferSize  = 8 * 1024  // fewer than 10 items
	mediumBufferSize = 32 * 1024 // 10 to 49 items
	largeBufferSize  = 64 * 1024 // 50 items or more

	// maxPooledBuffer is the largest buffer returned to a pool.
	maxPooledBuffer = 1 << 20
)

func newBufferPool(size int) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			return bytes.NewBuffer(make([]byte, 0, size))
		},
	}
}

var bufferPools = [...]*sync.Pool{
	newBufferPool(smallBufferSize),
	newBufferPool(mediumBufferSize),
	newBufferPool(largeBufferSize),
}

func bufferTier(items int) int {
	switch {
	case items < 10:
		return 0
	case items < 50:
		return 1
	default:
		return 2
	}
}

// getTemplateBuffer returns an empty buffer sized for a file rendering items entries.
func getTemplateBuffer(items int) *bytes.Buffer {
	buf := bufferPools[bufferTier(items)].Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putTemplateBuffer returns buf to the pool it was taken from.
func putTemplateBuffer(buf *bytes.Buffer, items int) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPools[bufferTier(items)].Put(buf)
}
