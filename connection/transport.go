package connection

import (
	"errors"
	"time"
)

// ErrReadTimeout 读超时哨兵错误。上层据此区分“无新数据”与 I/O 故障。
var ErrReadTimeout = errors.New("connection: read timeout")

// ErrClosed is returned for operations on a closed transport.
var ErrClosed = errors.New("connection: transport closed")

// Transport 已建立、已认证的双工字节通道（交互式 shell 等价物）。
// 加密协商与认证由实现方完成，核心不参与。
//
// 实现必须保证：Read 在 timeout 内无数据时返回 ErrReadTimeout；
// 一个 Transport 同一时刻只被一个 Session 独占使用。
type Transport interface {
	// Read fills p with available bytes, waiting at most timeout.
	Read(p []byte, timeout time.Duration) (int, error)

	// Write sends p on the wire.
	Write(p []byte) error

	Close() error
}
