package connections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/logger"
	"github.com/xrpscan/xrpl-go"
)

// ErrNotFound is returned when the node does not know the ledger or
// transaction.
var ErrNotFound = errors.New("not found")

var notFoundErrors = map[string]bool{
	"txnNotFound":    true,
	"lgrNotFound":    true,
	"entryNotFound":  true,
	"objectNotFound": true,
}

// Requester is satisfied by *xrpl.Client.
type Requester interface {
	Request(req xrpl.BaseRequest) (xrpl.BaseResponse, error)
}

// requestClient resolves the current RPC client on every call so that
// reconnects are picked up.
type requestClient struct{}

func (requestClient) Request(req xrpl.BaseRequest) (xrpl.BaseResponse, error) {
	client := GetXRPLRequestClient()
	if client == nil {
		return nil, errors.New("xrpl client is not initialized")
	}
	return client.Request(req)
}

// Node issues ledger and tx requests with a per-request timeout.
type Node struct {
	client  Requester
	timeout time.Duration
}

func NewNode(client Requester, timeout time.Duration) *Node {
	return &Node{client: client, timeout: timeout}
}

// DefaultNode talks to the shared RPC client.
func DefaultNode() *Node {
	return NewNode(requestClient{}, config.EnvRequestTimeout())
}

// FetchLedger returns the result of a `ledger` request with expanded
// transactions and metadata.
func (n *Node) FetchLedger(ctx context.Context, ledgerIndex uint32) (map[string]interface{}, error) {
	return n.request(ctx, xrpl.BaseRequest{
		"command":      "ledger",
		"ledger_index": ledgerIndex,
		"transactions": true,
		"expand":       true,
	})
}

// FetchTransaction returns the result of a `tx` request.
func (n *Node) FetchTransaction(ctx context.Context, hash string) (map[string]interface{}, error) {
	return n.request(ctx, xrpl.BaseRequest{
		"command":     "tx",
		"transaction": strings.ToUpper(hash),
	})
}

// LookupTransaction reports whether the node knows hash.
func (n *Node) LookupTransaction(ctx context.Context, hash string) error {
	_, err := n.FetchTransaction(ctx, hash)
	return err
}

func (n *Node) request(ctx context.Context, request xrpl.BaseRequest) (map[string]interface{}, error) {
	command, _ := request["command"].(string)
	requestID := fmt.Sprintf("%s.%s", command, uuid.NewString())
	request["id"] = requestID

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	type result struct {
		response xrpl.BaseResponse
		err      error
	}
	resultChan := make(chan result, 1)
	startTime := time.Now()
	go func() {
		response, err := n.client.Request(request)
		resultChan <- result{response: response, err: err}
	}()

	var response xrpl.BaseResponse
	select {
	case res := <-resultChan:
		if res.err != nil {
			logger.Log.Warn().Str("request_id", requestID).Dur("request_duration", time.Since(startTime)).Err(res.err).Msg("XRPL request failed")
			return nil, fmt.Errorf("%s request: %w", command, res.err)
		}
		response = res.response
	case <-ctx.Done():
		logger.Log.Warn().Str("request_id", requestID).Dur("request_duration", time.Since(startTime)).Msg("XRPL request timed out")
		return nil, fmt.Errorf("%s request: %w", command, ctx.Err())
	}

	logger.Log.Debug().Str("request_id", requestID).Dur("request_duration", time.Since(startTime)).Msg("XRPL request completed")
	return unwrapResult(command, response)
}

// unwrapResult extracts the result object, mapping node error codes to Go
// errors.
func unwrapResult(command string, response map[string]interface{}) (map[string]interface{}, error) {
	result, _ := response["result"].(map[string]interface{})
	code, _ := response["error"].(string)
	if code == "" && result != nil {
		code, _ = result["error"].(string)
	}
	status, _ := response["status"].(string)
	if code == "" && status == "error" {
		code = "unknownError"
	}

	if code != "" {
		if notFoundErrors[code] {
			return nil, fmt.Errorf("%s %s: %w", command, code, ErrNotFound)
		}
		return nil, fmt.Errorf("%s request returned %s", command, code)
	}
	if result == nil {
		return nil, fmt.Errorf("%s response has no result property", command)
	}
	return result, nil
}
