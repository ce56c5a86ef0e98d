package lifecycle

import (
	"context"
	"errors"
	"log"
	"time"

	"clubadmin/internal/models"
	"clubadmin/internal/payments"
	"clubadmin/internal/ports"
	"clubadmin/internal/repository/audit"
	"clubadmin/internal/repository/database"
	"clubadmin/internal/services/receipts"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Auditor records applied transitions and rollup warnings. Failures here
// are logged and swallowed; the audit trail must never block treasury work.
type Auditor interface {
	RecordTransition(ctx context.Context, rec audit.TransitionRecord) error
	RecordWarnings(ctx context.Context, warnings []payments.IntegrityWarning) error
}

// Service wires the payment engine to its collaborators: the Postgres
// repositories, the receipt object store and the Mongo audit trail.
type Service struct {
	Payments ports.PaymentStore
	Members  ports.MemberStore
	Receipts ports.ReceiptStore
	Audit    Auditor

	Logger *log.Logger
}

func NewService(paymentStore ports.PaymentStore, memberStore ports.MemberStore, receiptStore ports.ReceiptStore, auditor Auditor) *Service {
	return &Service{
		Payments: paymentStore,
		Members:  memberStore,
		Receipts: receiptStore,
		Audit:    auditor,
		Logger:   log.Default(),
	}
}

// CreateInput is a new fee for a member. The period may arrive in either
// wire encoding; CreatePayment resolves it once.
type CreateInput struct {
	MemberID      string
	PeriodCompact string
	PeriodMonth   int
	PeriodYear    int
	Amount        decimal.Decimal
	State         string
	Notes         string
}

func (s *Service) CreatePayment(ctx context.Context, in CreateInput) (models.Payment, error) {
	member, err := s.Members.GetByID(ctx, in.MemberID)
	if errors.Is(err, database.ErrNotFound) {
		return models.Payment{}, &payments.NotFoundError{Kind: "member", ID: in.MemberID}
	}
	if err != nil {
		return models.Payment{}, err
	}

	period, err := models.ResolvePeriod(in.PeriodCompact, in.PeriodMonth, in.PeriodYear)
	if err != nil {
		return models.Payment{}, &payments.ValidationError{Msg: err.Error()}
	}

	if in.Amount.IsNegative() {
		return models.Payment{}, &payments.ValidationError{Msg: "amount must not be negative"}
	}

	// Creation may pick any initial state; only transitions are policed.
	state := models.StatePending
	if in.State != "" {
		state, err = models.ParseState(in.State)
		if err != nil {
			return models.Payment{}, &payments.ValidationError{Msg: err.Error()}
		}
	}

	now := time.Now().UTC()
	p := models.Payment{
		ID:        uuid.NewString(),
		MemberID:  member.ID,
		Period:    period,
		Amount:    in.Amount,
		State:     state,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if state == models.StatePaid {
		p.PaidOn = &now
	}

	if err := s.Payments.Create(ctx, p); err != nil {
		return models.Payment{}, err
	}

	s.Logger.Printf("[LIFECYCLE][CREATE] payment=%s member=%s period=%s state=%s", p.ID, p.MemberID, p.Period, p.State)
	return p, nil
}

// TransitionInput carries a requested state change. Receipt, when present,
// is uploaded before anything is committed; if the upload fails the
// payment stays exactly as it was.
type TransitionInput struct {
	PaymentID  string
	Target     string
	Method     string
	Notes      string
	ActorID    string
	ReceiptRef string
	Receipt    *ports.ReceiptUpload
}

func (s *Service) Transition(ctx context.Context, in TransitionInput) (models.Payment, error) {
	target, err := models.ParseState(in.Target)
	if err != nil {
		return models.Payment{}, &payments.ValidationError{Msg: err.Error()}
	}

	current, err := s.Payments.GetByID(ctx, in.PaymentID)
	if errors.Is(err, database.ErrNotFound) {
		return models.Payment{}, &payments.NotFoundError{Kind: "payment", ID: in.PaymentID}
	}
	if err != nil {
		return models.Payment{}, err
	}

	opts := payments.TransitionOptions{Method: in.Method, Notes: in.Notes, ReceiptRef: in.ReceiptRef}

	if in.Receipt != nil {
		// Validation happens before any network traffic, and the upload
		// must succeed before the transition is applied anywhere.
		if err := receipts.Validate(*in.Receipt); err != nil {
			return models.Payment{}, err
		}
		if err := receiptPrecheck(target, in); err != nil {
			return models.Payment{}, err
		}

		in.Receipt.PaymentID = current.ID
		in.Receipt.MemberID = current.MemberID

		ref, err := s.Receipts.Store(ctx, *in.Receipt)
		if err != nil {
			s.Logger.Printf("[LIFECYCLE][ERR] receipt upload payment=%s: %v", current.ID, err)
			return models.Payment{}, err
		}
		opts.ReceiptRef = ref
	}

	next, err := payments.ApplyTransition(current, target, opts)
	if err != nil {
		return models.Payment{}, err
	}

	if err := s.Payments.UpdateState(ctx, next); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.Payment{}, &payments.NotFoundError{Kind: "payment", ID: in.PaymentID}
		}
		return models.Payment{}, err
	}

	s.Logger.Printf("[LIFECYCLE][TRANSITION] payment=%s %s -> %s", next.ID, current.State, next.State)
	s.recordTransition(ctx, current, next, in)
	return next, nil
}

// receiptPrecheck runs the transition's own validation before the upload,
// so a doomed transition does not leave an orphan object behind. The method
// check mirrors ApplyTransition; the engine re-checks it afterwards anyway.
func receiptPrecheck(target models.State, in TransitionInput) error {
	if target == models.StatePaid && in.Method == "" {
		return &payments.ValidationError{Msg: "payment method required"}
	}
	return nil
}

// ListPayments returns the period/state-filtered collection, newest period
// ordering left to the repository.
func (s *Service) ListPayments(ctx context.Context, period *models.Period, state *models.State) ([]models.Payment, error) {
	all, err := s.Payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := payments.FilterByPeriod(all, period)
	if state != nil {
		out = payments.FilterByState(out, *state)
	}
	return out, nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (models.Payment, error) {
	p, err := s.Payments.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return models.Payment{}, &payments.NotFoundError{Kind: "payment", ID: id}
	}
	return p, err
}

// Statistics computes the dashboard snapshot for one period, or for the
// whole collection when period is nil.
func (s *Service) Statistics(ctx context.Context, period *models.Period) (payments.Statistics, error) {
	all, err := s.Payments.ListAll(ctx)
	if err != nil {
		return payments.Statistics{}, err
	}
	return payments.ComputeStatistics(payments.FilterByPeriod(all, period)), nil
}

// MemberRollups recomputes the per-member tallies from the live collection.
// Integrity warnings are returned to the caller and sunk to the audit trail.
func (s *Service) MemberRollups(ctx context.Context) (map[string]*payments.MemberRollup, []payments.IntegrityWarning, error) {
	paymentList, err := s.Payments.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.Members.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	rollups, warnings := payments.RollupByMember(paymentList, members)

	for _, w := range warnings {
		s.Logger.Printf("[LIFECYCLE][WARN] %s", w)
	}
	if len(warnings) > 0 && s.Audit != nil {
		if err := s.Audit.RecordWarnings(ctx, warnings); err != nil {
			s.Logger.Printf("[LIFECYCLE][ERR] warning sink: %v", err)
		}
	}

	return rollups, warnings, nil
}

func (s *Service) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.Members.ListAll(ctx)
}

func (s *Service) recordTransition(ctx context.Context, from, to models.Payment, in TransitionInput) {
	if s.Audit == nil {
		return
	}

	rec := audit.TransitionRecord{
		PaymentID: to.ID,
		MemberID:  to.MemberID,
		FromState: from.State.String(),
		ToState:   to.State.String(),
		PaidOn:    to.PaidOn,
	}
	if to.PaymentMethod != "" {
		rec.Method = &to.PaymentMethod
	}
	if to.ReceiptRef != "" {
		rec.ReceiptRef = &to.ReceiptRef
	}
	if in.Notes != "" {
		rec.Notes = &in.Notes
	}
	if in.ActorID != "" {
		rec.ActorID = &in.ActorID
	}

	if err := s.Audit.RecordTransition(ctx, rec); err != nil {
		s.Logger.Printf("[LIFECYCLE][ERR] audit payment=%s: %v", to.ID, err)
	}
}
