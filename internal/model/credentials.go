package model

// Credentials - данные для входа на upstream. Нигде не сохраняются.
type Credentials struct {
	Email         string
	Password      string
	TwoFactorCode string
}

// HasTwoFactorCode reports whether a 2FA code was supplied.
func (c Credentials) HasTwoFactorCode() bool {
	return c.TwoFactorCode != ""
}
