package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"clubadmin/internal/models"
	"clubadmin/internal/payments"
	"clubadmin/internal/ports"
	"clubadmin/internal/services/lifecycle"
	"clubadmin/internal/services/receipts"
	"clubadmin/internal/transport/auth"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ListPayments handles GET /payments?period=M/YYYY&status=paid.
func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	period, state, err := parseFilters(r)
	if err != nil {
		h.Error(w, err)
		return
	}

	paymentList, err := h.Svc.ListPayments(r.Context(), period, state)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"payments": paymentList,
		"count":    len(paymentList),
	})
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, p)
}

type createPaymentRequest struct {
	MemberID string `json:"member_id"`
	// Either the compact string or the integer pair; the string wins when
	// both are sent.
	Period      string `json:"periodo,omitempty"`
	PeriodMonth int    `json:"periodo_mes,omitempty"`
	PeriodYear  int    `json:"periodo_anio,omitempty"`
	Amount      string `json:"amount"`
	State       string `json:"state,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad JSON: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.MemberID) == "" {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "member_id is required"})
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad amount: " + err.Error()})
		return
	}

	p, err := h.Svc.CreatePayment(r.Context(), lifecycle.CreateInput{
		MemberID:      req.MemberID,
		PeriodCompact: req.Period,
		PeriodMonth:   req.PeriodMonth,
		PeriodYear:    req.PeriodYear,
		Amount:        amount,
		State:         req.State,
		Notes:         req.Notes,
	})
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusCreated, p)
}

type transitionRequest struct {
	State      string `json:"state"`
	Method     string `json:"method,omitempty"`
	Notes      string `json:"notes,omitempty"`
	ReceiptRef string `json:"receipt_ref,omitempty"`
}

// Transition handles POST /payments/{id}/transition. Plain JSON changes
// the state; multipart/form-data additionally carries the comprobante
// image, which is stored before the transition commits.
func (h *Handlers) Transition(w http.ResponseWriter, r *http.Request) {
	in := lifecycle.TransitionInput{PaymentID: chi.URLParam(r, "id")}
	if actorID, err := auth.GetAdminID(r.Context()); err == nil {
		in.ActorID = actorID
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(receipts.MaxSize + 1<<20); err != nil {
			h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad multipart: " + err.Error()})
			return
		}

		in.Target = r.FormValue("state")
		in.Method = r.FormValue("method")
		in.Notes = r.FormValue("notes")

		f, fh, err := r.FormFile("receipt")
		if err == nil {
			defer f.Close()
			in.Receipt = &ports.ReceiptUpload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Body:        f,
			}
		} else if err != http.ErrMissingFile {
			h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad receipt: " + err.Error()})
			return
		}
	} else {
		var req transitionRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if err := dec.Decode(&req); err != nil {
			h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad JSON: " + err.Error()})
			return
		}
		in.Target = req.State
		in.Method = req.Method
		in.Notes = req.Notes
		in.ReceiptRef = req.ReceiptRef
	}

	if strings.TrimSpace(in.Target) == "" {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "state is required"})
		return
	}

	p, err := h.Svc.Transition(r.Context(), in)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, p)
}

// PaymentHistory handles GET /payments/{id}/history from the audit trail.
func (h *Handlers) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.Svc.GetPayment(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}

	recs, err := h.Trail.ListTransitionsByPayment(r.Context(), id, 100)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{"transitions": recs})
}

// Statistics handles GET /payments/stats?period=M/YYYY.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodParam(r)
	if err != nil {
		h.Error(w, err)
		return
	}

	stats, err := h.Svc.Statistics(r.Context(), period)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, stats)
}

func parseFilters(r *http.Request) (*models.Period, *models.State, error) {
	period, err := parsePeriodParam(r)
	if err != nil {
		return nil, nil, err
	}

	var state *models.State
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := models.ParseState(raw)
		if err != nil {
			return nil, nil, &payments.ValidationError{Msg: err.Error()}
		}
		state = &s
	}

	return period, state, nil
}

func parsePeriodParam(r *http.Request) (*models.Period, error) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return nil, nil
	}

	p, err := models.ParsePeriod(raw)
	if err != nil {
		return nil, &payments.ValidationError{Msg: err.Error()}
	}
	return &p, nil
}
