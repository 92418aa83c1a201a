package model

// LoginState - состояние протокола входа
type LoginState string

const (
	LoginStart                LoginState = "START"
	LoginTokenFetched         LoginState = "TOKEN_FETCHED"
	LoginCredentialsSubmitted LoginState = "CREDENTIALS_SUBMITTED"
	LoginTwoFactorPending     LoginState = "TWO_FACTOR_PENDING"
	LoginAuthenticated        LoginState = "AUTHENTICATED"
	LoginFailed               LoginState = "FAILED"
)

var loginTransitions = map[LoginState][]LoginState{
	LoginStart:                {LoginTokenFetched, LoginFailed},
	LoginTokenFetched:         {LoginCredentialsSubmitted, LoginFailed},
	LoginCredentialsSubmitted: {LoginAuthenticated, LoginTwoFactorPending, LoginFailed},
	LoginTwoFactorPending:     {LoginAuthenticated, LoginFailed},
}

// CanTransition reports whether the protocol may move from s to next.
func (s LoginState) CanTransition(next LoginState) bool {
	for _, allowed := range loginTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s LoginState) Terminal() bool {
	return s == LoginAuthenticated || s == LoginFailed
}
