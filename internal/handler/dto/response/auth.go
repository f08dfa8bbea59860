package response

import "cinebook/internal/usecase/commands"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

func FromLoginResult(res *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: res.AccessToken,
		UserID:      res.UserID,
		Role:        res.Role,
	}
}
