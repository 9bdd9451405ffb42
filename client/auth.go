package client

import (
	"context"
	"net/http"

	"driftsip_admin/model"
)

func (a *OrderAPI) Login(ctx context.Context, username, password string) (model.TokenData, error) {
	var out struct {
		Status string          `json:"status"`
		Data   model.TokenData `json:"data"`
	}
	err := a.do(ctx, http.MethodPost, "/auth/login", nil,
		model.LoginInput{Username: username, Password: password}, &out)
	return out.Data, err
}

func (a *OrderAPI) RefreshToken(ctx context.Context, refreshToken string) (model.TokenData, error) {
	var out struct {
		Status string          `json:"status"`
		Data   model.TokenData `json:"data"`
	}
	err := a.do(ctx, http.MethodPost, "/auth/refresh-token", nil,
		map[string]string{"refreshToken": refreshToken}, &out)
	return out.Data, err
}
