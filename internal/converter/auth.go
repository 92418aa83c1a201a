package converter

import (
	authDTO "gradescope_proxy/internal/api/dto/auth"
	"gradescope_proxy/internal/model"
)

func ToCredentials(req authDTO.LoginRequest) model.Credentials {
	return model.Credentials{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
	}
}

func ToLoginResponse(res model.LoginResult) authDTO.LoginResponse {
	return authDTO.LoginResponse{
		SessionToken: res.Token,
		Email:        res.Email,
	}
}

func ToSessionResponse(entry model.SessionEntry) authDTO.SessionResponse {
	return authDTO.SessionResponse{
		Email:      entry.OwnerEmail,
		CreatedAt:  entry.CreatedAt,
		LastActive: entry.LastActive,
	}
}
