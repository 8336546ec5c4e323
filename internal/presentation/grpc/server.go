package grpc

import (
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/infrastructure/config"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/tlsutil"
)

// Server wraps the gRPC server with health checking and optional TLS.
type Server struct {
	gs      *grpclib.Server
	handler *LendingHandler
	logger  *slog.Logger
}

// NewServer builds the gRPC server and registers the lending service.
func NewServer(handler *LendingHandler, cfg config.Config, logger *slog.Logger) *Server {
	var opts []grpclib.ServerOption

	if cfg.TLS.Enabled {
		creds, err := tlsutil.ServerTLSConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials, continuing without TLS", "error", err)
		} else {
			opts = append(opts, grpclib.Creds(creds))
			logger.Info("gRPC TLS enabled", "cert", cfg.TLS.CertFile)
		}
	}

	gs := grpclib.NewServer(opts...)

	RegisterLendingServiceServer(gs, handler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(cfg.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, healthServer)

	if cfg.Reflection {
		reflection.Register(gs)
		logger.Info("gRPC reflection enabled")
	}

	return &Server{
		gs:      gs,
		handler: handler,
		logger:  logger,
	}
}

// Serve starts listening on the given address and blocks until Stop is called
// or the listener fails.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("gRPC server listening", "addr", addr)
	return s.gs.Serve(lis)
}

// Stop drains in-flight RPCs and shuts the server down.
func (s *Server) Stop() {
	s.gs.GracefulStop()
}
