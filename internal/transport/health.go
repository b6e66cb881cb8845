package transport

import (
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SyncServiceName is the health service name reported for the sync controller.
const SyncServiceName = "blockinsight7000.explorer.SyncIngester"

// HealthServer reports ingester liveness through the standard gRPC health protocol.
type HealthServer struct {
	*health.Server
	logger *zap.Logger
}

// NewHealthServer returns a HealthServer that starts NOT_SERVING until the first successful cycle.
func NewHealthServer(logger *zap.Logger) *HealthServer {
	hs := &HealthServer{Server: health.NewServer(), logger: logger.Named("health")}
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(SyncServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// SetServing flips both the overall and the sync service status.
func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.SetServingStatus("", status)
	h.SetServingStatus(SyncServiceName, status)
}

// NewGRPCServer builds a gRPC server with the health service and the standard interceptor chain.
func NewGRPCServer(logger *zap.Logger, hs *HealthServer) *grpc.Server {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	healthpb.RegisterHealthServer(grpcServer, hs)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)
	return grpcServer
}
