package connections

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrpscan/xrpl-go"
)

type fakeRequester struct {
	requests []xrpl.BaseRequest
	response xrpl.BaseResponse
	err      error
	delay    time.Duration
}

func (f *fakeRequester) Request(req xrpl.BaseRequest) (xrpl.BaseResponse, error) {
	f.requests = append(f.requests, req)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.response, f.err
}

func TestFetchTransaction(t *testing.T) {
	fake := &fakeRequester{response: xrpl.BaseResponse{
		"status": "success",
		"result": map[string]interface{}{"hash": "ABC", "TransactionType": "Payment"},
	}}
	node := NewNode(fake, time.Second)

	result, err := node.FetchTransaction(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Payment", result["TransactionType"])

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "tx", fake.requests[0]["command"])
	assert.Equal(t, "ABC", fake.requests[0]["transaction"])
	id, _ := fake.requests[0]["id"].(string)
	assert.True(t, strings.HasPrefix(id, "tx."), id)
}

func TestFetchLedgerRequest(t *testing.T) {
	fake := &fakeRequester{response: xrpl.BaseResponse{
		"result": map[string]interface{}{"ledger": map[string]interface{}{"ledger_index": "5"}},
	}}
	_, err := NewNode(fake, 0).FetchLedger(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), fake.requests[0]["ledger_index"])
	assert.Equal(t, true, fake.requests[0]["expand"])
	assert.Equal(t, true, fake.requests[0]["transactions"])
}

func TestLookupTransactionNotFound(t *testing.T) {
	tests := []struct {
		name     string
		response xrpl.BaseResponse
	}{
		{"top level error", xrpl.BaseResponse{"status": "error", "error": "txnNotFound"}},
		{"error inside result", xrpl.BaseResponse{"result": map[string]interface{}{"error": "txnNotFound", "status": "error"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNode(&fakeRequester{response: tt.response}, time.Second).LookupTransaction(context.Background(), "ABC")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRequestErrors(t *testing.T) {
	_, err := NewNode(&fakeRequester{response: xrpl.BaseResponse{"status": "error", "error": "invalidParams"}}, time.Second).
		FetchTransaction(context.Background(), "ABC")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = NewNode(&fakeRequester{response: xrpl.BaseResponse{"status": "success"}}, time.Second).
		FetchTransaction(context.Background(), "ABC")
	assert.Error(t, err)

	boom := errors.New("connection reset")
	_, err = NewNode(&fakeRequester{err: boom}, time.Second).FetchTransaction(context.Background(), "ABC")
	assert.ErrorIs(t, err, boom)
}

func TestRequestTimeout(t *testing.T) {
	fake := &fakeRequester{delay: 200 * time.Millisecond, response: xrpl.BaseResponse{"result": map[string]interface{}{}}}
	_, err := NewNode(fake, 10*time.Millisecond).FetchTransaction(context.Background(), "ABC")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNextBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, nextBackoff(time.Second))
	assert.Equal(t, maxBackoff, nextBackoff(20*time.Second))
	assert.Equal(t, maxBackoff, nextBackoff(maxBackoff))
}
