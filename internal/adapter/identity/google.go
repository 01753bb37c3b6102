package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
)

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint.
type GoogleVerifier struct {
	endpoint   *url.URL
	clientID   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// tokenInfo mirrors the JSON payload of the tokeninfo endpoint. Google
// encodes booleans and numbers as strings there.
type tokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Exp           string `json:"exp"`
}

// NewGoogleVerifier creates verifier with default timeout. An empty clientID
// disables the audience check.
func NewGoogleVerifier(tokenInfoURL, clientID string, logger *slog.Logger) (*GoogleVerifier, error) {
	parsed, err := url.Parse(tokenInfoURL)
	if err != nil {
		return nil, fmt.Errorf("parse tokeninfo url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("tokeninfo url must be absolute")
	}
	return &GoogleVerifier{
		endpoint: parsed,
		clientID: clientID,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}, nil
}

// Verify resolves idToken into the identity it asserts.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*model.ExternalIdentity, error) {
	endpoint := *v.endpoint
	query := endpoint.Query()
	query.Set("id_token", idToken)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: tokeninfo rejected token (%s)", domainErrors.ErrExternalIdentity, resp.Status)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		v.logger.Error("tokeninfo request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("tokeninfo error: %s", resp.Status)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}
	if err := v.check(info); err != nil {
		return nil, err
	}

	return &model.ExternalIdentity{
		ExternalID: info.Sub,
		Email:      strings.TrimSpace(info.Email),
		Name:       info.Name,
	}, nil
}

func (v *GoogleVerifier) check(info tokenInfo) error {
	if v.clientID != "" && info.Aud != v.clientID {
		return fmt.Errorf("%w: audience mismatch", domainErrors.ErrExternalIdentity)
	}
	if info.Sub == "" {
		return fmt.Errorf("%w: missing subject", domainErrors.ErrExternalIdentity)
	}
	if info.EmailVerified != "" && info.EmailVerified != "true" {
		return fmt.Errorf("%w: email not verified", domainErrors.ErrExternalIdentity)
	}
	if info.Exp != "" {
		exp, err := strconv.ParseInt(info.Exp, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: malformed expiry", domainErrors.ErrExternalIdentity)
		}
		if !time.Unix(exp, 0).After(v.now()) {
			return fmt.Errorf("%w: token expired", domainErrors.ErrExternalIdentity)
		}
	}
	return nil
}
