package utils

import (
	"io"
	"sync"
)

// Flusher is implemented by buffered writers such as bufio.Writer.
type Flusher interface {
	Flush() error
}

// FlushingWriter serializes writes from the logger and the command output and flushes buffered targets after
// every write so log lines and diff lines interleave in order.
type FlushingWriter struct {
	target io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps the writer. A nil writer yields nil and an already wrapped writer is returned unchanged.
func NewFlushingWriter(target io.Writer) io.Writer {
	switch typedTarget := target.(type) {
	case nil:
		return nil
	case *FlushingWriter:
		return typedTarget
	default:
		return &FlushingWriter{target: target}
	}
}

// Write delegates to the target and flushes it when it buffers.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.target == nil {
		return len(data), nil
	}

	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	bytesWritten, writeError := writer.target.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if flusher, buffered := writer.target.(Flusher); buffered {
		return bytesWritten, flusher.Flush()
	}
	return bytesWritten, nil
}
