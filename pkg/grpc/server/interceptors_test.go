package server

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type call struct {
	method, code string
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []call
}

func (r *recordingObserver) ObserveGRPC(method, code string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{method, code})
}

func (r *recordingObserver) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/test.Service/TestMethod"}

func successHandler(ctx context.Context, req any) (any, error) {
	return "success", nil
}

func errorHandler(code codes.Code) grpc.UnaryHandler {
	return func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(code, "test error")
	}
}

func TestLoggingInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	interceptor := LoggingInterceptor(zap.New(core))

	t.Run("successful request", func(t *testing.T) {
		ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 4242}})

		resp, err := interceptor(ctx, "test request", testInfo, successHandler)

		require.NoError(t, err)
		assert.Equal(t, "success", resp)
		started := logs.FilterMessage("gRPC request started").All()
		require.NotEmpty(t, started)
		assert.Equal(t, "10.0.0.7:4242", started[len(started)-1].ContextMap()["client_addr"])
	})

	t.Run("client error is logged as warning", func(t *testing.T) {
		_, err := interceptor(context.Background(), "test request", testInfo, errorHandler(codes.InvalidArgument))

		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.Equal(t, 1, logs.FilterMessage("gRPC request rejected").Len())
	})

	t.Run("server error is logged as error", func(t *testing.T) {
		_, err := interceptor(context.Background(), "test request", testInfo, errorHandler(codes.Internal))

		assert.Equal(t, codes.Internal, status.Code(err))
		failed := logs.FilterMessage("gRPC request failed").All()
		require.Len(t, failed, 1)
		assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
		assert.Equal(t, "unknown", failed[0].ContextMap()["client_addr"])
	})
}

func TestMetricsInterceptor(t *testing.T) {
	obs := &recordingObserver{}
	interceptor := MetricsInterceptor(obs)

	_, err := interceptor(context.Background(), nil, testInfo, successHandler)
	require.NoError(t, err)
	_, err = interceptor(context.Background(), nil, testInfo, errorHandler(codes.NotFound))
	require.Error(t, err)

	assert.Equal(t, []call{
		{"/test.Service/TestMethod", "OK"},
		{"/test.Service/TestMethod", "NotFound"},
	}, obs.snapshot())
}

func TestNewRejectsInvalidPort(t *testing.T) {
	_, err := New(WithPort(70000))
	assert.ErrorContains(t, err, "invalid port")
}

func TestServerBuilderWithLogging(t *testing.T) {
	logger := zaptest.NewLogger(t)
	obs := &recordingObserver{}
	lis := bufconn.Listen(1 << 20)

	server, err := New(
		WithListener(lis),
		WithLogger(logger),
		WithLogging(true),
		WithMetrics(obs),
	)
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			t.Logf("Server shutdown error: %v", err)
		}
	}()

	assert.NotNil(t, server.grpcServer)
	assert.NotNil(t, server.logger)
	assert.NotNil(t, server.healthServer)

	server.RegisterServiceWithHealth("test.Service", func(s *grpc.Server) {})
	server.Start()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthClient := healthpb.NewHealthClient(conn)
	resp, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: "test.Service"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	server.SetServiceHealth("test.Service", healthpb.HealthCheckResponse_NOT_SERVING)
	resp, err = healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: "test.Service"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	calls := obs.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "/grpc.health.v1.Health/Check", calls[0].method)
}

func TestServeFailureIsReported(t *testing.T) {
	lis := bufconn.Listen(1 << 10)
	require.NoError(t, lis.Close())

	server, err := New(WithListener(lis))
	require.NoError(t, err)
	server.Start()

	select {
	case err := <-server.Errors():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected serve error")
	}
}
