package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
)

const ordersPath = "/v1/orders"

// maxErrorBody bounds how much of a provider error response is kept for logs.
const maxErrorBody = 2048

var (
	ErrRequestFailed  = errs.New("razorpay request failed")
	ErrUnexpectedCode = errs.New("razorpay returned non-success status")
	ErrBadResponse    = errs.New("razorpay response could not be decoded")
)

type RazorpayClient struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewRazorpayClient(cfg config.RazorpayConfig) *RazorpayClient {
	return &RazorpayClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateRemoteOrder makes a single attempt; timeouts come from the HTTP client.
func (c *RazorpayClient) CreateRemoteOrder(ctx context.Context, in commands.RemoteOrderRequest) (*commands.RemoteOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   in.AmountMinor,
		Currency: in.Currency,
		Receipt:  in.Receipt,
		Notes:    in.Notes,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "marshal order request"), ErrRequestFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ordersPath, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "build order request"), ErrRequestFailed)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "razorpay create order"), ErrRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr errorResponse
		detail := string(raw)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Code != "" {
			detail = apiErr.Error.Code + ": " + apiErr.Error.Description
		}
		return nil, errs.Mark(errs.Newf("razorpay status=%d %s", resp.StatusCode, detail), ErrUnexpectedCode)
	}

	var result createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode razorpay order"), ErrBadResponse)
	}
	if result.ID == "" {
		return nil, errs.Mark(errs.New("razorpay order id missing"), ErrBadResponse)
	}

	return &commands.RemoteOrder{
		ID:          result.ID,
		AmountMinor: result.Amount,
		Currency:    result.Currency,
	}, nil
}
