package audit

import (
	"context"
	"fmt"
	"time"

	mg "clubadmin/internal/config/connections/mongo"
	"clubadmin/internal/payments"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TransitionsCollection = "payment_transitions"
	WarningsCollection    = "integrity_warnings"
)

// TransitionRecord documents one applied state change, for the treasury's
// audit views. The payment row itself only keeps the latest state.
type TransitionRecord struct {
	ID         any        `bson:"_id,omitempty" json:"id"`
	PaymentID  string     `bson:"payment_id" json:"payment_id"`
	MemberID   string     `bson:"member_id" json:"member_id"`
	FromState  string     `bson:"from_state" json:"from_state"`
	ToState    string     `bson:"to_state" json:"to_state"`
	Method     *string    `bson:"method,omitempty" json:"method,omitempty"`
	ReceiptRef *string    `bson:"receipt_ref,omitempty" json:"receipt_ref,omitempty"`
	Notes      *string    `bson:"notes,omitempty" json:"notes,omitempty"`
	ActorID    *string    `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	PaidOn     *time.Time `bson:"paid_on,omitempty" json:"paid_on,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

type Trail struct {
	m *mg.Mongo
}

func NewTrail(m *mg.Mongo) *Trail {
	return &Trail{m: m}
}

func (t *Trail) RecordTransition(ctx context.Context, rec TransitionRecord) error {
	if t == nil || t.m == nil || t.m.Database == nil {
		return mongo.ErrClientDisconnected
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	doc := bson.D{
		{Key: "payment_id", Value: rec.PaymentID},
		{Key: "member_id", Value: rec.MemberID},
		{Key: "from_state", Value: rec.FromState},
		{Key: "to_state", Value: rec.ToState},
		{Key: "method", Value: rec.Method},
		{Key: "receipt_ref", Value: rec.ReceiptRef},
		{Key: "notes", Value: rec.Notes},
		{Key: "actor_id", Value: rec.ActorID},
		{Key: "paid_on", Value: rec.PaidOn},
		{Key: "created_at", Value: rec.CreatedAt},
	}

	_, err := t.m.Database.Collection(TransitionsCollection).InsertOne(ctx, doc, options.InsertOne())
	return err
}

// RecordWarnings sinks data-integrity warnings surfaced by a rollup run.
// Best effort by contract: the rollup already completed with partial
// results, these documents only exist for observability.
func (t *Trail) RecordWarnings(ctx context.Context, warnings []payments.IntegrityWarning) error {
	if t == nil || t.m == nil || t.m.Database == nil {
		return mongo.ErrClientDisconnected
	}
	if len(warnings) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(warnings))
	for _, w := range warnings {
		docs = append(docs, bson.D{
			{Key: "payment_id", Value: w.PaymentID},
			{Key: "member_id", Value: w.MemberID},
			{Key: "reason", Value: w.Reason},
			{Key: "created_at", Value: now},
		})
	}

	_, err := t.m.Database.Collection(WarningsCollection).InsertMany(ctx, docs)
	return err
}

func (t *Trail) ListTransitionsByPayment(ctx context.Context, paymentID string, limit int64) ([]TransitionRecord, error) {
	if t == nil || t.m == nil || t.m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := t.m.Database.Collection(TransitionsCollection).Find(ctx, bson.M{"payment_id": paymentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recs := make([]TransitionRecord, 0)
	for cur.Next(ctx) {
		var r TransitionRecord
		if err := cur.Decode(&r); err != nil {
			continue
		}
		if oid, ok := r.ID.(primitive.ObjectID); ok {
			r.ID = oid.Hex()
		}
		recs = append(recs, r)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return recs, nil
}
