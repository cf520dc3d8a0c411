package text

import (
	"context"
	"errors"
	"net"

	"go.uber.org/zap"
)

// Server accepts TCP connections and runs one Session per connection.
// All sessions share the same service, which serializes commands
// internally, so concurrent clients cannot interleave half-applied
// book mutations.
type Server struct {
	addr string
	svc  OrderService
	log  *zap.Logger
}

func NewServer(addr string, svc OrderService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{addr: addr, svc: svc, log: log}
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.log.Info("text protocol listening", zap.String("addr", lis.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = lis.Close()
	}()

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	s.log.Info("session opened", zap.String("remote", remote))

	sess := NewSession(s.svc, s.log)
	if err := sess.Run(conn, conn); err != nil {
		s.log.Warn("session aborted", zap.String("remote", remote), zap.Error(err))
		return
	}
	s.log.Info("session closed", zap.String("remote", remote))
}
