package parameter

import "time"

// Snapshot Streaming
const (
	// StreamQueueSize is the hub's inbound snapshot buffer; full buffers drop the oldest frame
	StreamQueueSize = 4

	// StreamClientQueueSize is the per-client outbound buffer
	StreamClientQueueSize = 8

	// StreamStarEvery sends star positions once every N snapshots
	StreamStarEvery = 15

	// StreamWriteTimeout bounds a single websocket write
	StreamWriteTimeout = 2 * time.Second

	// StreamShutdownTimeout bounds HTTP server shutdown
	StreamShutdownTimeout = 3 * time.Second

	// StreamReadBufferSize and StreamWriteBufferSize size the websocket upgrader
	StreamReadBufferSize  = 1024
	StreamWriteBufferSize = 64 * 1024
)
