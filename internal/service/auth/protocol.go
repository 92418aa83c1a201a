package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/config"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/scrape"
)

const formContentType = "application/x-www-form-urlencoded"

type loginOutcome int

const (
	outcomeRejected loginOutcome = iota
	outcomeTwoFactor
	outcomeSuccess
)

func (a *attempt) fetchAuthToken(ctx context.Context) (string, error) {
	res, err := a.sess.Get(ctx, "/", nil)
	if err != nil {
		return "", err
	}

	tok, err := scrape.Attr(res.Body, a.cfg.AuthTokenSelector(), "value")
	if err != nil {
		return "", apperr.Wrap(apperr.KindProtocol, err, "login form authenticity token not found")
	}
	return tok, nil
}

func (a *attempt) submitCredentials(ctx context.Context, authToken string) (*upstream.Response, error) {
	form := url.Values{}
	form.Set("utf8", "✓")
	form.Set("session[email]", a.creds.Email)
	form.Set("session[password]", a.creds.Password)
	form.Set("session[remember_me]", "0")
	form.Set("session[remember_me_sso]", "0")
	form.Set("commit", "Log In")
	form.Set("authenticity_token", authToken)

	return a.post(ctx, a.cfg.LoginPath(), form)
}

// post отправляет форму. Ответы 4xx разбираются эвристиками,
// 5xx считаются ошибкой upstream.
func (a *attempt) post(ctx context.Context, path string, form url.Values) (*upstream.Response, error) {
	res, err := a.sess.Do(ctx, http.MethodPost, path, nil, formContentType, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= http.StatusInternalServerError {
		return nil, res.OK()
	}
	return res, nil
}

// classifyLogin decides what the response to the credentials POST means.
// Checks run in order: two-factor redirect, error banner, success redirect.
// The banner text is returned for rejected attempts when present.
func classifyLogin(cfg config.LoginConfig, res *upstream.Response) (loginOutcome, string) {
	if res.URL != nil && strings.Contains(res.URL.String(), cfg.TwoFactorURLMarker()) {
		return outcomeTwoFactor, ""
	}
	if banner, ok := scrape.Text(res.Body, cfg.ErrorBannerSelector()); ok {
		return outcomeRejected, banner
	}
	if res.Redirected(cfg.SuccessRedirectStatus()) {
		return outcomeSuccess, ""
	}
	return outcomeRejected, ""
}

func (a *attempt) attachCSRF(res *upstream.Response) error {
	csrf, err := scrape.Attr(res.Body, a.cfg.CSRFSelector(), "content")
	if err != nil {
		return apperr.Wrap(apperr.KindProtocol, err, "csrf token not found after login")
	}
	a.sess.SetCSRFToken(csrf)
	return nil
}
