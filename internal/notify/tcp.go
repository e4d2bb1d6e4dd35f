package notify

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
)

// TCPSink wraps a client connection. Writes carry a deadline so a stalled
// client cannot hold up a broadcast pass.
type TCPSink struct {
	conn         net.Conn
	writeTimeout time.Duration
}

// NewTCPSink wraps an accepted connection.
func NewTCPSink(conn net.Conn, writeTimeout time.Duration) *TCPSink {
	return &TCPSink{conn: conn, writeTimeout: writeTimeout}
}

// Send writes the payload, bounded by the write timeout.
func (s *TCPSink) Send(payload []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	_, err := s.conn.Write(payload)
	return err
}

// Close closes the underlying connection.
func (s *TCPSink) Close() error {
	return s.conn.Close()
}

// Target returns the client address.
func (s *TCPSink) Target() string {
	return s.conn.RemoteAddr().String()
}

// TCPServer accepts operator client connections and registers each one as a
// notification sink.
type TCPServer struct {
	addr         string
	writeTimeout time.Duration
	broadcaster  *Broadcaster
	logger       *zap.Logger
}

// NewTCPServer creates the listener component.
func NewTCPServer(addr string, writeTimeout time.Duration, broadcaster *Broadcaster, logger *zap.Logger) *TCPServer {
	return &TCPServer{
		addr:         addr,
		writeTimeout: writeTimeout,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

// Run listens for client connections until the context is cancelled. Each
// accepted connection becomes a registered sink; clients never send data, so
// there is nothing to read.
func (s *TCPServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.logger.Info("notification listener started", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.logger.Info("notification listener stopped")
				return nil
			}
			s.logger.Warn("accept failed", zap.Error(err))
			continue
		}
		s.broadcaster.Register(NewTCPSink(conn, s.writeTimeout))
	}
}
