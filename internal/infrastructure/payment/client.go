package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oksasatya/go-commerce-api/internal/domain/gateway"
)

// Client talks JSON over HTTPS to the hosted payment gateway. The gateway
// itself is opaque to this application: client tokens go out to the SPA
// drop-in, nonces come back and are exchanged for transactions here.
type Client struct {
	BaseURL    string
	MerchantID string
	PublicKey  string
	PrivateKey string
	HTTP       *http.Client
}

func NewClient(baseURL, merchantID, publicKey, privateKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		MerchantID: merchantID,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		HTTP:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ClientToken(ctx context.Context) (string, error) {
	var out struct {
		ClientToken string `json:"client_token"`
	}
	if err := c.post(ctx, "/client_token", map[string]any{
		"merchant_id": c.MerchantID,
	}, &out); err != nil {
		return "", err
	}
	return out.ClientToken, nil
}

func (c *Client) Sale(ctx context.Context, amountCents int64, nonce string) (string, error) {
	var out struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/transactions", map[string]any{
		"merchant_id":          c.MerchantID,
		"amount_cents":         amountCents,
		"payment_method_nonce": nonce,
	}, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", fmt.Errorf("%w: %s", gateway.ErrDeclined, out.Message)
	}
	return out.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.PublicKey, c.PrivateKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d for %s", res.StatusCode, path)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

var _ gateway.PaymentGateway = (*Client)(nil)
