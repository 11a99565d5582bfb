package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("pesapal credentials are not set")

type BillingAddress struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number"`
	CountryCode  string `json:"country_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	City         string `json:"city"`
	Line1        string `json:"line_1"`
}

type OrderRequest struct {
	ID             string         `json:"id"`
	Currency       string         `json:"currency"`
	Amount         float64        `json:"amount"`
	Description    string         `json:"description"`
	CallbackURL    string         `json:"callback_url"`
	NotificationID string         `json:"notification_id"`
	BillingAddress BillingAddress `json:"billing_address"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

func (e *apiError) err() error {
	if e == nil || (e.Code == "" && e.Message == "" && e.ErrorType == "") {
		return nil
	}
	return fmt.Errorf("pesapal error %s: %s", e.Code, e.Message)
}

type OrderResponse struct {
	OrderTrackingID   string    `json:"order_tracking_id"`
	MerchantReference string    `json:"merchant_reference"`
	RedirectURL       string    `json:"redirect_url"`
	Error             *apiError `json:"error"`
}

type TransactionStatus struct {
	PaymentMethod            string    `json:"payment_method"`
	Amount                   float64   `json:"amount"`
	ConfirmationCode         string    `json:"confirmation_code"`
	PaymentStatusDescription string    `json:"payment_status_description"`
	MerchantReference        string    `json:"merchant_reference"`
	Currency                 string    `json:"currency"`
	Error                    *apiError `json:"error"`
}

type tokenResponse struct {
	Token  string    `json:"token"`
	Error  *apiError `json:"error"`
	Status string    `json:"status"`
}

type PesapalClient struct {
	cfg    config.PesapalConfig
	client *resty.Client
}

func NewPesapalClient(cfg config.PesapalConfig) *PesapalClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &PesapalClient{cfg: cfg, client: client}
}

func (p *PesapalClient) Configured() bool {
	return p != nil && p.cfg.ConsumerKey != "" && p.cfg.ConsumerSecret != ""
}

func (p *PesapalClient) Currency() string {
	return p.cfg.Currency
}

func (p *PesapalClient) RequestToken(ctx context.Context) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	var out tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"consumer_key":    p.cfg.ConsumerKey,
			"consumer_secret": p.cfg.ConsumerSecret,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/api/Auth/RequestToken")
	if err != nil {
		return "", fmt.Errorf("request pesapal token: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("pesapal token request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if err := out.Error.err(); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("token not found in response: %s", resp.String())
	}
	return out.Token, nil
}

// SubmitOrder registers the order with Pesapal and returns the redirect the
// buyer follows to pay. NotificationID and CallbackURL default from config.
func (p *PesapalClient) SubmitOrder(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	token, err := p.RequestToken(ctx)
	if err != nil {
		return nil, err
	}
	if order.NotificationID == "" {
		order.NotificationID = p.cfg.NotificationID
	}
	if order.NotificationID == "" {
		return nil, fmt.Errorf("missing pesapal notification id: %w", ErrNotConfigured)
	}
	if order.CallbackURL == "" {
		order.CallbackURL = p.cfg.CallbackURL
	}
	if order.Currency == "" {
		order.Currency = p.cfg.Currency
	}

	var out OrderResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(order).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/api/Transactions/SubmitOrderRequest")
	if err != nil {
		return nil, fmt.Errorf("submit pesapal order: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("pesapal order request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if err := out.Error.err(); err != nil {
		return nil, err
	}
	if out.RedirectURL == "" || out.OrderTrackingID == "" {
		return nil, fmt.Errorf("incomplete response from payment gateway: %s", resp.String())
	}
	return &out, nil
}

func (p *PesapalClient) TransactionStatus(ctx context.Context, trackingID string) (*TransactionStatus, error) {
	token, err := p.RequestToken(ctx)
	if err != nil {
		return nil, err
	}

	var out TransactionStatus
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("orderTrackingId", trackingID).
		SetResult(&out).
		ForceContentType("application/json").
		Get("/api/Transactions/GetTransactionStatus")
	if err != nil {
		return nil, fmt.Errorf("check pesapal status: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("pesapal status request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if err := out.Error.err(); err != nil {
		return nil, err
	}
	return &out, nil
}
