package dapserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/engine"
	"github.com/qdb-debug/qdb/internal/fileaccess"
)

// Server accepts DAP connections and runs one session per connection.
type Server struct {
	engineFactory engine.Factory
	accessor      fileaccess.Accessor

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	done     chan struct{}
	connWg   sync.WaitGroup
}

// New creates a Server. engineFactory may be nil, in which case every
// launch on every session is answered with a debug-engine-not-available
// error rather than a running program.
func New(engineFactory engine.Factory, accessor fileaccess.Accessor) *Server {
	return &Server{
		engineFactory: engineFactory,
		accessor:      accessor,
		conns:         make(map[net.Conn]struct{}),
		done:          make(chan struct{}),
	}
}

// Listen starts accepting connections on addr and returns the bound
// address. The accept loop runs until Close or ctx cancellation.
func (s *Server) Listen(ctx context.Context, addr string) (net.Addr, error) {
	logger := ctxlog.FromContext(ctx)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return nil, errors.New("server already closed")
	}
	s.listener = listener
	s.mu.Unlock()

	logger.Info("DAP server listening.", "address", listener.Addr().String())

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	go s.acceptLoop(ctx, listener)
	return listener.Addr(), nil
}

func (s *Server) acceptLoop(ctx context.Context, listener net.Listener) {
	logger := ctxlog.FromContext(ctx)
	for {
		conn, err := listener.Accept()
		if err != nil {
			// Accept fails permanently once the listener closes.
			logger.Debug("DAP accept loop ending.", "reason", err)
			return
		}
		logger.Info("DAP connection accepted.", "remote", conn.RemoteAddr().String())

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.connWg.Add(1)
		go func() {
			defer s.connWg.Done()
			defer s.forget(conn)
			defer conn.Close()
			s.ServeConn(ctx, conn)
			logger.Debug("DAP connection closed.", "remote", conn.RemoteAddr().String())
		}()
	}
}

// ServeConn runs a single DAP session over rw until the client disconnects
// or the stream ends. It is used both by the accept loop and directly for
// stdio transport.
func (s *Server) ServeConn(ctx context.Context, rw ReadWriter) {
	var runtime engine.Runtime
	if s.engineFactory != nil {
		runtime = s.engineFactory()
	}
	sess := newSession(rw, runtime, s.accessor)
	sess.run(ctx)
}

func (s *Server) forget(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Close stops the accept loop, closes every accepted connection so
// in-flight sessions unblock, and waits for them to finish. Safe to call
// more than once.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	listener := s.listener
	conns := make([]net.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}
	for _, conn := range conns {
		conn.Close()
	}
	s.connWg.Wait()
	return err
}
