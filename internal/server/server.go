// Package server exposes the dashboard and the bank-authorization flows over
// HTTP. Handlers only decode requests, call the use cases and encode the
// results.
package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tpp-demo/internal/metrics"
	"tpp-demo/internal/usecase"
)

// Deps are the collaborators a Server needs. Metrics and Gatherer may be nil.
type Deps struct {
	Flows     *usecase.FlowService
	Dashboard *usecase.DashboardUseCase
	Registry  *usecase.Registry
	Store     usecase.LedgerStore
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Clock     usecase.Clock
	Logger    *zap.Logger
}

type Server struct {
	flows     *usecase.FlowService
	dashboard *usecase.DashboardUseCase
	registry  *usecase.Registry
	store     usecase.LedgerStore
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	clock     usecase.Clock
	log       *zap.Logger
}

func NewServer(d Deps) *Server {
	s := &Server{
		flows:     d.Flows,
		dashboard: d.Dashboard,
		registry:  d.Registry,
		store:     d.Store,
		metrics:   d.Metrics,
		gatherer:  d.Gatherer,
		clock:     d.Clock,
		log:       d.Logger,
	}
	if s.clock == nil {
		s.clock = usecase.SystemClock{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}
