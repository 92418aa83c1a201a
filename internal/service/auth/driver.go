package auth

import (
	"context"
	"fmt"
	"log"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/config"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
)

// Driver проводит один вход на upstream: токен формы, отправка
// учётных данных, при необходимости 2FA, затем CSRF токен.
// Каждая попытка получает свой cookie jar. Повторов нет.
type Driver struct {
	upstreamCfg config.UpstreamConfig
	loginCfg    config.LoginConfig
}

func NewDriver(upstreamCfg config.UpstreamConfig, loginCfg config.LoginConfig) *Driver {
	return &Driver{
		upstreamCfg: upstreamCfg,
		loginCfg:    loginCfg,
	}
}

// Login returns an authenticated upstream session or a classified error.
// On any failure the partially built session is closed.
func (d *Driver) Login(ctx context.Context, creds model.Credentials) (*upstream.Session, error) {
	if timeout := d.upstreamCfg.LoginTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sess, err := upstream.NewSession(upstream.Config{
		BaseURL:   d.upstreamCfg.BaseURL(),
		Timeout:   d.upstreamCfg.RequestTimeout(),
		UserAgent: d.upstreamCfg.UserAgent(),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "create upstream session")
	}

	a := &attempt{
		cfg:   d.loginCfg,
		sess:  sess,
		creds: creds,
		state: model.LoginStart,
	}
	if err := a.run(ctx); err != nil {
		a.fail()
		sess.Close()
		log.Printf("[login] %s: attempt ended in %s: %v", creds.Email, a.state, err)
		return nil, err
	}

	return sess, nil
}

// attempt - состояние одной попытки входа
type attempt struct {
	cfg   config.LoginConfig
	sess  *upstream.Session
	creds model.Credentials
	state model.LoginState
}

func (a *attempt) run(ctx context.Context) error {
	// 1. Токен формы входа и начальные cookies
	authToken, err := a.fetchAuthToken(ctx)
	if err != nil {
		return err
	}
	if err := a.advance(model.LoginTokenFetched); err != nil {
		return err
	}

	// 2. Отправка учётных данных
	res, err := a.submitCredentials(ctx, authToken)
	if err != nil {
		return err
	}
	if err := a.advance(model.LoginCredentialsSubmitted); err != nil {
		return err
	}

	// 3. Классификация ответа
	outcome, banner := classifyLogin(a.cfg, res)
	switch outcome {
	case outcomeTwoFactor:
		if err := a.advance(model.LoginTwoFactorPending); err != nil {
			return err
		}
		if !a.creds.HasTwoFactorCode() {
			return apperr.New(apperr.KindTwoFactorRequired, "two-factor code required")
		}
		// 4. Подтверждение кодом
		if res, err = a.verifyTwoFactor(ctx); err != nil {
			return err
		}
	case outcomeSuccess:
	default:
		if banner != "" {
			return apperr.New(apperr.KindInvalidCredentials, banner)
		}
		return apperr.New(apperr.KindInvalidCredentials, "invalid email or password")
	}

	// 5. CSRF токен для последующих запросов
	if err := a.attachCSRF(res); err != nil {
		return err
	}
	return a.advance(model.LoginAuthenticated)
}

func (a *attempt) advance(next model.LoginState) error {
	if !a.state.CanTransition(next) {
		return apperr.New(apperr.KindInternal, fmt.Sprintf("illegal login transition %s -> %s", a.state, next))
	}
	a.state = next
	return nil
}

func (a *attempt) fail() {
	if !a.state.Terminal() {
		a.state = model.LoginFailed
	}
}
