package status

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported by the health service while a run is active.
const ServiceName = "woodsim"

type HealthServer struct {
	server *grpc.Server
	health *health.Server
	lis    net.Listener
	log    *zap.SugaredLogger
}

func NewHealthServer(addr string, log *zap.SugaredLogger) (*HealthServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	server := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		server: server,
		health: hs,
		lis:    lis,
		log:    log,
	}, nil
}

func (h *HealthServer) Addr() string {
	return h.lis.Addr().String()
}

func (h *HealthServer) Start() {
	h.log.Infof("grpc health server is running on %s", h.Addr())
	go func() {
		if err := h.server.Serve(h.lis); err != nil {
			h.log.Errorw("grpc health server stopped", "error", err)
		}
	}()
}

func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(ServiceName, status)
}

func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
