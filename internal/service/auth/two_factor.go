package auth

import (
	"context"
	"net/url"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/upstream"
	"gradescope_proxy/pkg/scrape"
)

// verifyTwoFactor отправляет код 2FA. Успех - редирект на страницу аккаунта.
func (a *attempt) verifyTwoFactor(ctx context.Context) (*upstream.Response, error) {
	page, err := a.sess.Get(ctx, a.cfg.TwoFactorPath(), nil)
	if err != nil {
		return nil, err
	}

	tok, err := scrape.Attr(page.Body, a.cfg.TwoFactorTokenSelector(), "value")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProtocol, err, "two-factor form authenticity token not found")
	}

	form := url.Values{}
	form.Set("utf8", "✓")
	form.Set("authenticity_token", tok)
	form.Set("two_factor[code]", a.creds.TwoFactorCode)
	form.Set("commit", "Verify")

	res, err := a.post(ctx, a.cfg.TwoFactorPath(), form)
	if err != nil {
		return nil, err
	}

	if res.URL != nil && strings.Contains(res.URL.String(), a.cfg.AccountURLMarker()) {
		return res, nil
	}
	if banner, ok := scrape.Text(res.Body, a.cfg.ErrorBannerSelector()); ok && banner != "" {
		return nil, apperr.New(apperr.KindTwoFactorRejected, banner)
	}
	return nil, apperr.New(apperr.KindTwoFactorRejected, "invalid two-factor code")
}
