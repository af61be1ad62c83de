package gateway

import (
	"net/url"
	"testing"
	"time"

	"github.com/minhle-dev/ShopSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedCallback builds the parameter set the gateway would deliver,
// signature included.
func signedCallback(cfg Config, fields map[string]string) url.Values {
	signature := Sign(cfg.HashSecret, EncodeParams(fields))
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set(FieldSecureHash, signature)
	return values
}

func pendingOrder(id uint, total float64) *models.Order {
	return &models.Order{
		ID:            id,
		TotalAmount:   total,
		PaymentStatus: models.PaymentStatusPending,
		TxnRef:        NewTxnRef(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), id),
	}
}

func TestProcessSuccessTransition(t *testing.T) {
	cfg := testConfig()
	order := pendingOrder(42, 150000)
	st := newMemStore(order)
	processor := NewProcessor(cfg, st)

	params := signedCallback(cfg, map[string]string{
		FieldTxnRef:        order.TxnRef,
		FieldResponseCode:  "00",
		FieldAmount:        "15000000",
		FieldTransactionNo: "14422574",
		FieldBankCode:      "NCB",
		FieldPayDate:       "20240305104211",
	})

	result, err := processor.Process(params)
	require.NoError(t, err)
	assert.False(t, result.AlreadyFinal)

	saved := st.order(42)
	assert.Equal(t, models.PaymentStatusPaid, saved.PaymentStatus)
	assert.Equal(t, "14422574", saved.GatewayTxnID)
	assert.Equal(t, "NCB", saved.BankCode)
	assert.Equal(t, 150000.0, saved.PaidAmount)
	require.NotNil(t, saved.PaidAt)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 42, 11, 0, time.Local), *saved.PaidAt)
	assert.Empty(t, saved.FailureReason)
}

func TestProcessIsIdempotent(t *testing.T) {
	cfg := testConfig()
	order := pendingOrder(42, 150000)
	st := newMemStore(order)
	processor := NewProcessor(cfg, st)

	params := signedCallback(cfg, map[string]string{
		FieldTxnRef:        order.TxnRef,
		FieldResponseCode:  "00",
		FieldAmount:        "15000000",
		FieldTransactionNo: "14422574",
		FieldPayDate:       "20240305104211",
	})

	first, err := processor.Process(params)
	require.NoError(t, err)
	require.False(t, first.AlreadyFinal)
	paidAt := *st.order(42).PaidAt
	paidAmount := st.order(42).PaidAmount

	// Duplicate IPN delivery: success, but nothing re-derived or rewritten.
	second, err := processor.Process(params)
	require.NoError(t, err)
	assert.True(t, second.AlreadyFinal)
	assert.Equal(t, models.PaymentStatusPaid, second.Order.PaymentStatus)
	assert.Equal(t, paidAt, *st.order(42).PaidAt)
	assert.Equal(t, paidAmount, st.order(42).PaidAmount)
}

func TestProcessFailureCodeRecordsReason(t *testing.T) {
	cfg := testConfig()
	order := pendingOrder(7, 500)
	st := newMemStore(order)
	processor := NewProcessor(cfg, st)

	params := signedCallback(cfg, map[string]string{
		FieldTxnRef:       order.TxnRef,
		FieldResponseCode: "07",
		FieldAmount:       "50000",
	})

	result, err := processor.Process(params)
	require.NoError(t, err)
	assert.False(t, result.AlreadyFinal)

	saved := st.order(7)
	assert.Equal(t, models.PaymentStatusFailed, saved.PaymentStatus)
	assert.Contains(t, saved.FailureReason, "07")
	assert.Zero(t, saved.PaidAmount)
	assert.Nil(t, saved.PaidAt)
}

func TestProcessTerminalStateAbsorbsLaterCallbacks(t *testing.T) {
	cfg := testConfig()
	order := pendingOrder(7, 500)
	st := newMemStore(order)
	processor := NewProcessor(cfg, st)

	_, err := processor.Process(signedCallback(cfg, map[string]string{
		FieldTxnRef:       order.TxnRef,
		FieldResponseCode: "24",
	}))
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusFailed, st.order(7).PaymentStatus)

	// A success callback arriving after the failure settled is a no-op; the
	// state machine only transitions out of PENDING.
	result, err := processor.Process(signedCallback(cfg, map[string]string{
		FieldTxnRef:       order.TxnRef,
		FieldResponseCode: "00",
		FieldAmount:       "50000",
	}))
	require.NoError(t, err)
	assert.True(t, result.AlreadyFinal)
	assert.Equal(t, models.PaymentStatusFailed, st.order(7).PaymentStatus)
	assert.Nil(t, st.order(7).PaidAt)
}

func TestProcessRejectsTamperedParams(t *testing.T) {
	cfg := testConfig()
	order := pendingOrder(42, 150000)
	st := newMemStore(order)
	processor := NewProcessor(cfg, st)

	params := signedCallback(cfg, map[string]string{
		FieldTxnRef:       order.TxnRef,
		FieldResponseCode: "00",
		FieldAmount:       "15000000",
	})
	params.Set(FieldAmount, "15000001")

	_, err := processor.Process(params)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, models.PaymentStatusPending, st.order(42).PaymentStatus)
}

func TestProcessRejectsMissingSignature(t *testing.T) {
	cfg := testConfig()
	st := newMemStore(pendingOrder(42, 150000))
	processor := NewProcessor(cfg, st)

	params := url.Values{}
	params.Set(FieldTxnRef, st.order(42).TxnRef)
	params.Set(FieldResponseCode, "00")

	_, err := processor.Process(params)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestProcessUnknownReference(t *testing.T) {
	cfg := testConfig()
	processor := NewProcessor(cfg, newMemStore())

	params := signedCallback(cfg, map[string]string{
		FieldTxnRef:       "2024030500000099",
		FieldResponseCode: "00",
	})

	_, err := processor.Process(params)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestProcessMalformedAmountRecordsZero(t *testing.T) {
	cfg := testConfig()
	order := pendingOrder(42, 150000)
	st := newMemStore(order)
	processor := NewProcessor(cfg, st)

	params := signedCallback(cfg, map[string]string{
		FieldTxnRef:       order.TxnRef,
		FieldResponseCode: "00",
		FieldAmount:       "not-a-number",
	})

	result, err := processor.Process(params)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, result.Order.PaymentStatus)
	assert.Zero(t, st.order(42).PaidAmount)
}

func TestBuildThenCallbackEndToEnd(t *testing.T) {
	cfg := testConfig()
	st := newMemStore(&models.Order{ID: 42, TotalAmount: 150000, PaymentStatus: models.PaymentStatusPending})
	builder := NewBuilder(cfg, st)
	builder.now = fixedClock(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC))
	processor := NewProcessor(cfg, st)

	paymentURL, err := builder.Build(st.order(42), "203.0.113.7")
	require.NoError(t, err)

	parsed, err := url.Parse(paymentURL)
	require.NoError(t, err)
	assert.Equal(t, "15000000", parsed.Query().Get(FieldAmount))
	ref := parsed.Query().Get(FieldTxnRef)
	assert.Equal(t, "2024030500000042", ref)

	// The gateway answers with the same reference and amount, success code,
	// and its own signature.
	result, err := processor.Process(signedCallback(cfg, map[string]string{
		FieldTxnRef:        ref,
		FieldResponseCode:  "00",
		FieldAmount:        parsed.Query().Get(FieldAmount),
		FieldTransactionNo: "14422574",
		FieldBankCode:      "NCB",
	}))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, result.Order.PaymentStatus)
	assert.Equal(t, 150000.0, result.Order.PaidAmount)
	assert.Equal(t, models.PaymentStatusPaid, st.order(42).PaymentStatus)
}
