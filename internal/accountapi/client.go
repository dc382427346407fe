package accountapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/enroll/internal/domain"
)

const (
	HeaderClientToken = "X-Client-Token"
	HeaderAuthToken   = "X-BCBSMS-Authorization-Token"
	HeaderNonce       = "X-NONCE"

	statusOK = "200"
)

// Client calls the account provisioning API over HTTP.
type Client struct {
	baseURL     string
	clientToken string
	http        *http.Client
	validate    *validator.Validate
}

var _ domain.AccountAPI = (*Client)(nil)

// NewClient creates a Client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, clientToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		clientToken: clientToken,
		http:        httpClient,
		validate:    validator.New(),
	}
}

type verifyData struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	ShowAccountSharing    bool   `json:"showAccountSharing"`
	PolicyHolderFirstName string `json:"policyHolderFirstName"`
	PolicyHolderLastName  string `json:"policyHolderLastName"`
	RequestToken          string `json:"requestToken"`
	Nonce                 string `json:"nonce"`
	Username              string `json:"username"`
	Email                 string `json:"email"`
	UserExists            bool   `json:"userExists"`
}

// VerifyIdentity implements domain.AccountAPI.
func (c *Client) VerifyIdentity(ctx context.Context, req domain.VerifyRequest) (domain.IdentityRecord, error) {
	const op = domain.OpVerifyIdentity
	if err := c.validate.Struct(req); err != nil {
		return domain.IdentityRecord{}, &domain.APIError{Op: op, Code: domain.CodeUnknown, Err: fmt.Errorf("invalid request: %w", err)}
	}

	var data verifyData
	if err := c.do(ctx, op, http.MethodPost, "/user/account/verify", req, nil, &data); err != nil {
		return domain.IdentityRecord{}, err
	}
	return domain.IdentityRecord{
		FirstName:             data.FirstName,
		LastName:              data.LastName,
		PolicyHolderFirstName: data.PolicyHolderFirstName,
		PolicyHolderLastName:  data.PolicyHolderLastName,
		Username:              data.Username,
		Email:                 data.Email,
		UserExists:            data.UserExists,
		ShowAccountSharing:    data.ShowAccountSharing,
		Tokens: domain.SessionTokens{
			SessionToken: data.RequestToken,
			Nonce:        data.Nonce,
		},
	}, nil
}

// CheckUsername implements domain.AccountAPI. The username is available when the API answers "OK".
func (c *Client) CheckUsername(ctx context.Context, username string, tokens domain.SessionTokens) error {
	const op = domain.OpCheckUsername
	var data string
	path := "/user/account/availability/" + url.PathEscape(username)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &tokens, &data); err != nil {
		return err
	}
	if data != "OK" {
		return &domain.APIError{Op: op, HTTPStatus: http.StatusOK, Code: domain.CodeUsernameTaken, Message: data}
	}
	return nil
}

type questionsData struct {
	SecurityQuestions []struct {
		Questions []domain.SecurityQuestion `json:"questions"`
	} `json:"securityQuestions"`
}

// SecurityQuestions implements domain.AccountAPI.
func (c *Client) SecurityQuestions(ctx context.Context, tokens domain.SessionTokens) (domain.SecurityQuestionSet, error) {
	const op = domain.OpSecurityQuestions
	var set domain.SecurityQuestionSet
	var data questionsData
	if err := c.do(ctx, op, http.MethodGet, "/user/account/securityquestionnaire", nil, &tokens, &data); err != nil {
		return set, err
	}
	if len(data.SecurityQuestions) < len(set) {
		return set, &domain.APIError{
			Op:   op,
			Code: domain.CodeServerError,
			Err:  fmt.Errorf("expected %d question sets, got %d", len(set), len(data.SecurityQuestions)),
		}
	}
	for i := range set {
		set[i] = data.SecurityQuestions[i].Questions
	}
	return set, nil
}

type setupData struct {
	SessionToken string `json:"sessionToken"`
	Nonce        string `json:"nonce"`
}

// SetupAccount implements domain.AccountAPI.
func (c *Client) SetupAccount(ctx context.Context, req domain.AccountSetupRequest, tokens domain.SessionTokens) (domain.SessionTokens, error) {
	const op = domain.OpSetupAccount
	if err := c.validate.Struct(req); err != nil {
		return domain.SessionTokens{}, &domain.APIError{Op: op, Code: domain.CodeUnknown, Err: fmt.Errorf("invalid request: %w", err)}
	}

	var data setupData
	if err := c.do(ctx, op, http.MethodPut, "/user/account/setup", req, &tokens, &data); err != nil {
		return domain.SessionTokens{}, err
	}
	return domain.SessionTokens{SessionToken: data.SessionToken, Nonce: data.Nonce}, nil
}

// ShareAccount implements domain.AccountAPI.
func (c *Client) ShareAccount(ctx context.Context, req domain.ShareRequest, tokens domain.SessionTokens) error {
	return c.do(ctx, domain.OpShareAccount, http.MethodPut, "/user/account/share", req, &tokens, nil)
}

// ChangePassword implements domain.AccountAPI. Only the authorization token is sent; there is no nonce.
func (c *Client) ChangePassword(ctx context.Context, token string, req domain.ChangePasswordRequest) error {
	const op = domain.OpChangePassword
	if err := c.validate.Struct(req); err != nil {
		return &domain.APIError{Op: op, Code: domain.CodeUnknown, Err: fmt.Errorf("invalid request: %w", err)}
	}
	return c.do(ctx, op, http.MethodPost, "/user/account/password/update", req, &domain.SessionTokens{SessionToken: token}, nil)
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do sends one request and decodes the envelope's data into out (when non-nil).
func (c *Client) do(ctx context.Context, op domain.Operation, method, path string, body any, tokens *domain.SessionTokens, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Op: op, Code: domain.CodeUnknown, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.APIError{Op: op, Code: domain.CodeUnknown, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.clientToken != "" {
		req.Header.Set(HeaderClientToken, c.clientToken)
	}
	if tokens != nil {
		req.Header.Set(HeaderAuthToken, tokens.SessionToken)
		if tokens.Nonce != "" {
			req.Header.Set(HeaderNonce, tokens.Nonce)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.APIError{Op: op, Code: domain.CodeTransport, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{
			Op:         op,
			HTTPStatus: resp.StatusCode,
			Code:       classifyStatus(op, resp.StatusCode, env.Message),
			Message:    env.Message,
		}
	}
	if decodeErr != nil {
		return &domain.APIError{Op: op, HTTPStatus: resp.StatusCode, Code: domain.CodeServerError, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if env.Status != statusOK {
		// Business-rule rejection delivered with a 2xx transport status.
		msg := env.Message
		if msg == "" {
			msg = messageFromData(env.Data)
		}
		return &domain.APIError{Op: op, HTTPStatus: resp.StatusCode, Code: classifyMessage(msg), Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &domain.APIError{Op: op, HTTPStatus: resp.StatusCode, Code: domain.CodeServerError, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

// messageFromData reads {"message": "..."} nested inside data, as account setup reports it.
func messageFromData(raw json.RawMessage) string {
	var nested struct {
		Message string `json:"message"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &nested) != nil {
		return ""
	}
	return nested.Message
}
