package iso8583

import "sync"

// wireBufferPool backs Message.Bytes: most wire messages are a few hundred
// bytes, so a 4096-byte starting capacity avoids a grow-and-copy for the
// common case without holding onto anything unusually large between uses.
var wireBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 4096)
		return &buf
	},
}

func getBuffer() []byte {
	buf := wireBufferPool.Get().(*[]byte)
	return (*buf)[:0]
}

func putBuffer(buf []byte) {
	if cap(buf) <= 8192 { // don't keep an outsized buffer in the pool
		b := buf[:0]
		wireBufferPool.Put(&b)
	}
}
