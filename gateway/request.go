package gateway

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/minhle-dev/ShopSphere/models"
)

// Gateway field names. The receiving side recomputes the signature over
// exactly these keys, so they are part of the wire contract.
const (
	FieldVersion        = "vnp_Version"
	FieldCommand        = "vnp_Command"
	FieldTmnCode        = "vnp_TmnCode"
	FieldAmount         = "vnp_Amount"
	FieldCurrCode       = "vnp_CurrCode"
	FieldTxnRef         = "vnp_TxnRef"
	FieldOrderInfo      = "vnp_OrderInfo"
	FieldOrderType      = "vnp_OrderType"
	FieldLocale         = "vnp_Locale"
	FieldReturnURL      = "vnp_ReturnUrl"
	FieldIPAddr         = "vnp_IpAddr"
	FieldCreateDate     = "vnp_CreateDate"
	FieldExpireDate     = "vnp_ExpireDate"
	FieldSecureHash     = "vnp_SecureHash"
	FieldSecureHashType = "vnp_SecureHashType"
	FieldResponseCode   = "vnp_ResponseCode"
	FieldTransactionNo  = "vnp_TransactionNo"
	FieldBankCode       = "vnp_BankCode"
	FieldPayDate        = "vnp_PayDate"
)

// ResponseCodeSuccess is the gateway code that marks a successful payment.
const ResponseCodeSuccess = "00"

const (
	timestampLayout = "20060102150405"
	paymentWindow   = 15 * time.Minute
	orderTypeTag    = "other"
	fallbackIP      = "127.0.0.1"
)

// Builder assembles signed redirect URLs for the gateway's checkout flow.
type Builder struct {
	cfg   Config
	store OrderStore
	now   func() time.Time
}

func NewBuilder(cfg Config, store OrderStore) *Builder {
	return &Builder{cfg: cfg, store: store, now: time.Now}
}

// Build allocates (or reuses) the order's transaction reference, assembles
// the full field set, and returns the signed checkout URL. Calling Build
// again for the same order before any callback lands yields the same
// reference with fresh timestamps and therefore a fresh signature: a
// reissued, still-valid payment link.
func (b *Builder) Build(order *models.Order, clientIP string) (string, error) {
	ref, err := b.store.AllocateTxnRef(order.ID, NewTxnRef(b.now(), order.ID))
	if err != nil {
		return "", fmt.Errorf("allocate txn ref for order %d: %w", order.ID, err)
	}

	if clientIP == "" {
		clientIP = fallbackIP
	}

	// The gateway takes the amount in minor units. Truncate toward zero,
	// never round up: a fraction of a currency unit must not become a full
	// one on the customer's bill.
	amount := int64(math.Trunc(order.TotalAmount * 100))

	created := b.now()
	params := map[string]string{
		FieldVersion:    b.cfg.Version,
		FieldCommand:    b.cfg.Command,
		FieldTmnCode:    b.cfg.TmnCode,
		FieldAmount:     strconv.FormatInt(amount, 10),
		FieldCurrCode:   b.cfg.CurrCode,
		FieldTxnRef:     ref,
		FieldOrderInfo:  fmt.Sprintf("Payment for order #%d", order.ID),
		FieldOrderType:  orderTypeTag,
		FieldLocale:     b.cfg.Locale,
		FieldReturnURL:  b.cfg.ReturnURL,
		FieldIPAddr:     clientIP,
		FieldCreateDate: created.Format(timestampLayout),
		FieldExpireDate: created.Add(paymentWindow).Format(timestampLayout),
	}

	query := EncodeParams(params)
	signature := Sign(b.cfg.HashSecret, query)
	return b.cfg.PayURL + "?" + query + "&" + FieldSecureHash + "=" + signature, nil
}
