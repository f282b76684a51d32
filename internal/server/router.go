package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router returns the full handler chain.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.health)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Dashboard read models.
	mux.HandleFunc("GET /api/v1/dashboard", s.getDashboard)
	mux.HandleFunc("GET /api/v1/transactions", s.listTransactions)
	mux.HandleFunc("GET /api/v1/standing-orders", s.listStandingOrders)
	mux.HandleFunc("GET /api/v1/payees", s.listPayees)
	mux.HandleFunc("GET /api/v1/usecases", s.listUseCases)

	// Flows.
	mux.HandleFunc("POST /api/v1/flows", s.startFlow)
	mux.HandleFunc("POST /api/v1/payments", s.startPayment)
	mux.HandleFunc("GET /api/v1/flows/{id}", s.getFlow)
	mux.HandleFunc("POST /api/v1/flows/{id}/steps", s.submitStep)
	mux.HandleFunc("POST /api/v1/flows/{id}/cancel", s.cancelFlow)
	mux.HandleFunc("POST /api/v1/flows/{id}/select", s.selectUseCase)
	mux.HandleFunc("POST /api/v1/flows/{id}/complete", s.completeFlow)

	// Exports.
	mux.HandleFunc("GET /api/v1/exports/transactions.csv", s.exportTransactionsCSV)
	mux.HandleFunc("GET /api/v1/exports/transactions.xlsx", s.exportTransactionsXLSX)
	mux.HandleFunc("GET /api/v1/exports/statements/{bank}/{file}", s.exportStatementPDF)

	return s.observe(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe logs every request and feeds the HTTP metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(started)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if s.metrics != nil {
			s.metrics.ObserveRequest(route, rec.status, elapsed)
		}
		s.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
	})
}
