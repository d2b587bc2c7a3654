package server

import (
	"net/http"
	"time"

	"github.com/booksight/qbo-connect/qbo"
)

// clientForRequest resolves the user's current connection, runs it through
// the lifecycle manager, and builds a client from the freshened result.
// Clients are never built from a connection that skipped the freshness check.
func (s *Server) clientForRequest(r *http.Request) (*qbo.Client, error) {
	userID := r.PathValue("userId")

	conn, err := s.deps.Connections.FindCurrent(r.Context(), userID, "")
	if err != nil {
		return nil, err
	}

	fresh, err := s.deps.Lifecycle.EnsureFresh(r.Context(), conn)
	if err != nil {
		return nil, err
	}

	return qbo.NewClient(r.Context(), fresh, s.deps.ClientOptions...), nil
}

// ProfileHandler returns the connected company's profile.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.clientForRequest(r)
		if err != nil {
			writeError(w, err)
			return
		}

		company, err := client.CompanyInfo(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, company)
	}
}

// RevenueExpenseHandler returns the flattened profit-and-loss summary for
// one month (YYYY-MM, defaulting to the current month).
func (s *Server) RevenueExpenseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		monthParam := r.URL.Query().Get("month")
		if monthParam == "" {
			monthParam = time.Now().Format("2006-01")
		}
		month, err := time.Parse("2006-01", monthParam)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "month must be YYYY-MM"})
			return
		}
		startDate := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		endDate := startDate.AddDate(0, 1, -1)

		client, err := s.clientForRequest(r)
		if err != nil {
			writeError(w, err)
			return
		}

		report, err := client.ProfitAndLoss(r.Context(), startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qbo.NormalizeProfitAndLoss(report))
	}
}

// InvoicesHandler returns the latest invoices, most recently created first.
func (s *Server) InvoicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.clientForRequest(r)
		if err != nil {
			writeError(w, err)
			return
		}

		invoices, err := client.Invoices(r.Context(), 0)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qbo.NormalizeInvoices(invoices))
	}
}
