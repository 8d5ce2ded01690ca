package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scanpay_back_end/internal/models"
)

const DefaultTTL = 24 * time.Hour

func receiptKey(id string) string { return fmt.Sprintf("receipt:%s", id) }

func historyKey(owner string) string { return fmt.Sprintf("history:%s", owner) }

// Ledger keeps issued receipts in Redis so that every view of an id shows the same contents.
type Ledger struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLedger(rdb *redis.Client, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Ledger{rdb: rdb, ttl: ttl}
}

// Issued is a stored receipt together with the customer it was issued to.
type Issued struct {
	Owner   string         `json:"owner"`
	Receipt models.Receipt `json:"receipt"`
}

// Save stores a receipt issued to owner. An id that already exists is left untouched.
func (l *Ledger) Save(ctx context.Context, owner string, rec models.Receipt) error {
	data, err := json.Marshal(Issued{Owner: owner, Receipt: rec})
	if err != nil {
		return err
	}
	ok, err := l.rdb.SetNX(ctx, receiptKey(rec.ReceiptID), data, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("receipt %s already issued", rec.ReceiptID)
	}
	return nil
}

// Lookup returns the stored receipt and its owner.
func (l *Ledger) Lookup(ctx context.Context, id string) (Issued, bool, error) {
	data, err := l.rdb.Get(ctx, receiptKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Issued{}, false, nil
	}
	if err != nil {
		return Issued{}, false, err
	}
	var is Issued
	if err := json.Unmarshal(data, &is); err != nil {
		return Issued{}, false, err
	}
	return is, true, nil
}

func (l *Ledger) Get(ctx context.Context, id string) (models.Receipt, bool, error) {
	is, ok, err := l.Lookup(ctx, id)
	return is.Receipt, ok, err
}

// History is the per-customer list of past orders, newest first.
type History struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewHistory(rdb *redis.Client, ttl time.Duration) *History {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &History{rdb: rdb, ttl: ttl}
}

func (h *History) Append(ctx context.Context, owner string, rec models.Receipt) error {
	data, err := json.Marshal(rec.Summary())
	if err != nil {
		return err
	}
	key := historyKey(owner)
	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.Expire(ctx, key, h.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// List returns up to limit summaries; limit <= 0 means all.
func (h *History) List(ctx context.Context, owner string, limit int) ([]models.OrderSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raw, err := h.rdb.LRange(ctx, historyKey(owner), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.OrderSummary, 0, len(raw))
	for _, r := range raw {
		var s models.OrderSummary
		if err := json.Unmarshal([]byte(r), &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Latest returns the most recent order of owner, if any.
func (h *History) Latest(ctx context.Context, owner string) (models.OrderSummary, bool, error) {
	list, err := h.List(ctx, owner, 1)
	if err != nil || len(list) == 0 {
		return models.OrderSummary{}, false, err
	}
	return list[0], true, nil
}
