package relaxcsv

import "sync"

// spanPoolCap covers lines of up to 64 fields without growing.
const spanPoolCap = 64

// spanPoolMaxCap is the largest buffer returned to a pool, so that one very
// wide line does not pin memory.
const spanPoolMaxCap = 16 * spanPoolCap

// spanBuffer is the scratch space for the raw field spans of one call.
type spanBuffer[T any] struct {
	spans []T
	pool  *sync.Pool
}

// rawSpanPool and markedSpanPool provide reusable span buffers to reduce allocations.
var (
	rawSpanPool    sync.Pool
	markedSpanPool sync.Pool
)

func init() {
	rawSpanPool.New = func() interface{} {
		return &spanBuffer[rawField]{spans: make([]rawField, 0, spanPoolCap), pool: &rawSpanPool}
	}
	markedSpanPool.New = func() interface{} {
		return &spanBuffer[markedField]{spans: make([]markedField, 0, spanPoolCap), pool: &markedSpanPool}
	}
}

// acquireSpans returns an empty buffer for the reference tokenizer.
func acquireSpans() *spanBuffer[rawField] {
	buf := rawSpanPool.Get().(*spanBuffer[rawField])
	buf.spans = buf.spans[:0]
	return buf
}

// acquireMarkedSpans returns an empty buffer for the accelerated tokenizer.
func acquireMarkedSpans() *spanBuffer[markedField] {
	buf := markedSpanPool.Get().(*spanBuffer[markedField])
	buf.spans = buf.spans[:0]
	return buf
}

// release returns the buffer to its pool for reuse.
func (b *spanBuffer[T]) release() {
	if b == nil || cap(b.spans) > spanPoolMaxCap {
		return
	}
	b.spans = b.spans[:0]
	b.pool.Put(b)
}
