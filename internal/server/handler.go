package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tpp-demo/internal/domain"
	"tpp-demo/internal/gateway"
	"tpp-demo/internal/usecase"
)

var errBadRequest = errors.New("bad request")

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// dateRange parses the optional from/to query parameters.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	var from, to time.Time
	for _, p := range []struct {
		key string
		dst *time.Time
	}{{"from", &from}, {"to", &to}} {
		v := r.URL.Query().Get(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", errBadRequest, p.key)
		}
		*p.dst = t
	}
	return from, to, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Dashboard(r.Context(), s.clock.Now()))
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.Transactions(r.Context(), from, to))
}

func (s *Server) listStandingOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.StandingOrders(r.Context()))
}

func (s *Server) listPayees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Payees(r.Context()))
}

func (s *Server) listUseCases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Categories())
}

func (s *Server) startFlow(w http.ResponseWriter, r *http.Request) {
	var req usecase.StartRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	view, err := s.flows.StartFlow(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) startPayment(w http.ResponseWriter, r *http.Request) {
	var req usecase.PaymentRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	view, err := s.flows.StartPayment(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) getFlow(w http.ResponseWriter, r *http.Request) {
	view, err := s.flows.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) submitStep(w http.ResponseWriter, r *http.Request) {
	var in usecase.StepInput
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	view, err := s.flows.Submit(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) cancelFlow(w http.ResponseWriter, r *http.Request) {
	view, err := s.flows.Cancel(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) selectUseCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	if req.Index == nil {
		writeErr(w, fmt.Errorf("%w: index is required", errBadRequest))
		return
	}
	view, err := s.flows.Select(r.Context(), r.PathValue("id"), *req.Index)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type completionError struct {
	Error   string         `json:"error"`
	Outcome domain.Outcome `json:"outcome"`
	Ledger  *domain.Ledger `json:"ledger,omitempty"`
}

func (s *Server) completeFlow(w http.ResponseWriter, r *http.Request) {
	done, err := s.flows.Complete(r.Context(), r.PathValue("id"))
	if err != nil {
		if done.Outcome.Kind == domain.OutcomeFailed {
			writeJSON(w, statusFor(err), completionError{Error: err.Error(), Outcome: done.Outcome, Ledger: done.Ledger})
			return
		}
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, done)
}

func (s *Server) exportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := gateway.WriteTransactionsCSV(w, s.dashboard.Transactions(r.Context(), from, to)); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) exportTransactionsXLSX(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	data, err := gateway.BuildTransactionsXLSX(s.dashboard.Transactions(r.Context(), from, to))
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	_, _ = w.Write(data)
}

func (s *Server) exportStatementPDF(w http.ResponseWriter, r *http.Request) {
	ledger := s.store.Get()
	bank, ok := ledger.Bank(r.PathValue("bank"))
	if !ok {
		writeErr(w, fmt.Errorf("bank %q: %w", r.PathValue("bank"), domain.ErrBankNotFound))
		return
	}
	accountID := strings.TrimSuffix(r.PathValue("file"), ".pdf")
	account, ok := bank.Account(accountID)
	if !ok {
		writeErr(w, fmt.Errorf("account %q: %w", accountID, domain.ErrAccountNotFound))
		return
	}
	data, err := gateway.BuildStatementPDF(bank, account, s.clock.Now().Format(time.DateOnly))
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%s.pdf"`, account.ID))
	_, _ = w.Write(data)
}
