package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/crmvibe/crmdash/internal/errors"
	"github.com/crmvibe/crmdash/internal/session"
)

// loginFallbackMessage is surfaced when the backend rejects the exchange
// without a parseable detail message.
const loginFallbackMessage = "Login failed"

type exchangeRequest struct {
	Token string `json:"token"`
}

type exchangeResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        session.User `json:"user"`
}

// ExchangeGoogleToken trades a Google ID token for a backend-issued
// session. On a non-2xx response the backend's detail message is surfaced
// to the caller; a success body that fails schema validation is rejected
// as a transport error rather than trusted.
//
// This satisfies session.Exchanger.
func (c *Client) ExchangeGoogleToken(ctx context.Context, externalToken string) (session.Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/google", exchangeRequest{Token: externalToken})
	if err != nil {
		return session.Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		detail := detailFrom(body)
		if detail == "" {
			detail = loginFallbackMessage
		}
		c.logger.Debug("credential exchange rejected", "status", resp.StatusCode)
		return session.Session{}, errors.New(errors.ErrCodeAuthExchangeFailed, detail)
	}

	var exchResp exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&exchResp); err != nil {
		return session.Session{}, errors.NewMalformedBodyError(err)
	}
	if exchResp.AccessToken == "" || exchResp.User.Email == "" {
		return session.Session{}, errors.New(errors.ErrCodeAPIMalformedBody,
			"exchange response is missing access_token or user")
	}

	return session.Session{
		Token: exchResp.AccessToken,
		User:  exchResp.User,
	}, nil
}

// Me returns the profile of the user the stored credential belongs to.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
