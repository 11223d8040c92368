package grpc

import (
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/adapter/grpc/middleware"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name reported through the health protocol.
const ServiceName = "agromarket.ListingService"

// NewGRPCServer builds the side listener serving health and reflection.
func NewGRPCServer(appLogger *logger.Logger) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(
		middleware.TracingServerOption(),
		grpc.ChainUnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(server)

	appLogger.Info("gRPC server configured with health and reflection")
	return server, healthServer
}
