package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const defaultPort = 50051

type Option func(*Options)

type Options struct {
	port              int
	listener          net.Listener
	logger            *zap.Logger
	reflection        bool
	unaryInterceptors []grpc.UnaryServerInterceptor
	enableLogging     bool
	observer          RequestObserver
}

func WithPort(port int) Option {
	return func(o *Options) {
		o.port = port
	}
}

// WithListener serves on an existing listener instead of opening one on the
// configured port.
func WithListener(lis net.Listener) Option {
	return func(o *Options) {
		o.listener = lis
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func WithReflection(enabled bool) Option {
	return func(o *Options) {
		o.reflection = enabled
	}
}

// WithUnaryInterceptors appends interceptors after the metrics and logging ones.
func WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) Option {
	return func(o *Options) {
		o.unaryInterceptors = append(o.unaryInterceptors, interceptors...)
	}
}

func WithLogging(enabled bool) Option {
	return func(o *Options) {
		o.enableLogging = enabled
	}
}

// WithMetrics records every unary call on obs.
func WithMetrics(obs RequestObserver) Option {
	return func(o *Options) {
		o.observer = obs
	}
}

// Server wraps a grpc.Server with the standard health service.
type Server struct {
	grpcServer   *grpc.Server
	lis          net.Listener
	logger       *zap.Logger
	healthServer *health.Server

	mu       sync.Mutex
	services []string
	errCh    chan error
}

func (o *Options) interceptors(logger *zap.Logger) []grpc.UnaryServerInterceptor {
	var chain []grpc.UnaryServerInterceptor
	if o.observer != nil {
		chain = append(chain, MetricsInterceptor(o.observer))
	}
	if o.enableLogging {
		chain = append(chain, LoggingInterceptor(logger))
	}
	return append(chain, o.unaryInterceptors...)
}

func (o *Options) listen() (net.Listener, error) {
	if o.listener != nil {
		return o.listener, nil
	}
	if o.port < 1 || o.port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", o.port)
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", o.port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", o.port, err)
	}
	return lis, nil
}

// New creates a new gRPC server using the builder options.
func New(opts ...Option) (*Server, error) {
	options := &Options{port: defaultPort}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lis, err := options.listen()
	if err != nil {
		return nil, err
	}

	var serverOpts []grpc.ServerOption
	if chain := options.interceptors(logger); len(chain) > 0 {
		serverOpts = append(serverOpts, grpc.ChainUnaryInterceptor(chain...))
	}
	grpcServer := grpc.NewServer(serverOpts...)

	if options.reflection {
		reflection.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpcServer:   grpcServer,
		lis:          lis,
		logger:       logger.Named("grpc-server"),
		healthServer: healthServer,
		errCh:        make(chan error, 1),
	}, nil
}

// RegisterService allows the main application to register its specific service.
func (s *Server) RegisterService(registerFunc func(s *grpc.Server)) {
	registerFunc(s.grpcServer)
}

// RegisterServiceWithHealth registers a service and reports it as serving.
func (s *Server) RegisterServiceWithHealth(serviceName string, registerFunc func(s *grpc.Server)) {
	registerFunc(s.grpcServer)
	if serviceName == "" {
		return
	}

	s.mu.Lock()
	s.services = append(s.services, serviceName)
	s.mu.Unlock()

	s.healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("registered service with health check", zap.String("service", serviceName))
}

// SetServiceHealth updates the health status of a specific service.
func (s *Server) SetServiceHealth(serviceName string, status healthpb.HealthCheckResponse_ServingStatus) {
	s.healthServer.SetServingStatus(serviceName, status)
	s.logger.Info("updated service health",
		zap.String("service", serviceName),
		zap.String("status", status.String()))
}

// Start serves in a goroutine and returns immediately. A serve failure is
// delivered on Errors.
func (s *Server) Start() {
	s.logger.Info("gRPC server starting", zap.String("addr", s.lis.Addr().String()))

	go func() {
		if err := s.grpcServer.Serve(s.lis); err != nil {
			s.logger.Error("gRPC server failed", zap.Error(err))
			s.errCh <- err
		}
	}()
}

// Errors reports a failure of the serving goroutine.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Shutdown marks every service as not serving, then drains in-flight calls
// until ctx expires, after which remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("gRPC server shutting down")

	s.mu.Lock()
	services := append([]string{""}, s.services...)
	s.mu.Unlock()
	for _, name := range services {
		s.healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("forced shutdown due to timeout")
		s.grpcServer.Stop()
		return ctx.Err()
	}
}

// Addr returns the server's listening address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}
