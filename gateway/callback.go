package gateway

import (
	"net/url"
	"strconv"
	"time"

	"github.com/minhle-dev/ShopSphere/models"
	"github.com/minhle-dev/ShopSphere/utils"
)

// Result reports what processing a callback did.
type Result struct {
	Order        *models.Order
	TxnRef       string
	ResponseCode string
	// AlreadyFinal is set when the order had reached a terminal payment
	// status before this callback arrived; the call was a successful no-op.
	AlreadyFinal bool
}

// Processor applies gateway callbacks to orders at most once. The browser
// return redirect and the server-to-server notification both carry the same
// parameter set and both go through here; the row lock inside the store is
// what keeps a duplicate or racing delivery from double-applying.
type Processor struct {
	cfg   Config
	store OrderStore
	now   func() time.Time
}

func NewProcessor(cfg Config, store OrderStore) *Processor {
	return &Processor{cfg: cfg, store: store, now: time.Now}
}

// Process verifies the callback signature, resolves the order by its
// transaction reference, and applies the PENDING->PAID or PENDING->FAILED
// transition. Replays and the losing side of a race find the order already
// terminal and change nothing.
func (p *Processor) Process(raw url.Values) (*Result, error) {
	params := make(map[string]string, len(raw))
	for k := range raw {
		params[k] = raw.Get(k)
	}

	supplied := params[FieldSecureHash]
	delete(params, FieldSecureHash)
	delete(params, FieldSecureHashType)

	if !Verify(p.cfg.HashSecret, EncodeParams(params), supplied) {
		return nil, ErrInvalidSignature
	}

	res := &Result{
		TxnRef:       params[FieldTxnRef],
		ResponseCode: params[FieldResponseCode],
	}

	order, err := p.store.ApplyCallback(res.TxnRef, func(o *models.Order) bool {
		if o.PaymentStatus != models.PaymentStatusPending {
			res.AlreadyFinal = true
			return false
		}
		if res.ResponseCode == ResponseCodeSuccess {
			paidAt := p.payDate(params)
			o.PaymentStatus = models.PaymentStatusPaid
			o.GatewayTxnID = params[FieldTransactionNo]
			o.BankCode = params[FieldBankCode]
			o.PaidAmount = callbackAmount(params)
			o.PaidAt = &paidAt
		} else {
			o.PaymentStatus = models.PaymentStatusFailed
			o.FailureReason = FailureReason(res.ResponseCode)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	res.Order = order
	return res, nil
}

// callbackAmount parses the gateway's integer minor-unit amount back to the
// decimal total. The gateway occasionally omits or garbles the field; record
// zero and keep the callback, matching its own tolerance for partial data.
func callbackAmount(params map[string]string) float64 {
	rawAmount := params[FieldAmount]
	if rawAmount == "" {
		return 0
	}
	minor, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil {
		utils.LogError("Malformed %s value %q in callback, recording paid amount as 0", FieldAmount, rawAmount)
		return 0
	}
	return float64(minor) / 100
}

// payDate takes the gateway's payment timestamp when present and parseable,
// and falls back to the processing time.
func (p *Processor) payDate(params map[string]string) time.Time {
	if raw := params[FieldPayDate]; raw != "" {
		if t, err := time.ParseInLocation(timestampLayout, raw, time.Local); err == nil {
			return t
		}
		utils.LogError("Malformed %s value %q in callback, using processing time", FieldPayDate, raw)
	}
	return p.now()
}
