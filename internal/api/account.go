package api

import (
	"context"

	"tablenest/internal/model"
)

// BeginVerification starts a sign-in (name nil) or sign-up (name set)
// flow. The backend emails a verification code and returns the user
// identifier the code belongs to.
func (c *Client) BeginVerification(ctx context.Context, email string, name *string) (int64, error) {
	req := struct {
		Email string  `json:"email"`
		Name  *string `json:"name"`
	}{email, name}

	var resp struct {
		responseError
		UserID int64 `json:"userID"`
	}
	if err := c.post(ctx, "/beginVerification", req, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// VerifyCode exchanges an emailed verification code for an auth token.
func (c *Client) VerifyCode(ctx context.Context, userID int64, code string) (string, error) {
	req := struct {
		UserID int64  `json:"userID"`
		Code   string `json:"code"`
	}{userID, code}

	var resp struct {
		responseError
		AuthToken string `json:"authToken"`
	}
	if err := c.post(ctx, "/getAuthToken", req, &resp); err != nil {
		return "", err
	}
	return resp.AuthToken, nil
}

// AccountDetails returns the signed-in user's profile.
func (c *Client) AccountDetails(ctx context.Context, creds model.Credentials) (model.Account, error) {
	req := struct {
		UserID    int64  `json:"userID"`
		AuthToken string `json:"authToken"`
	}{creds.UserID, creds.AuthToken}

	var resp struct {
		responseError
		Details struct {
			Name         string `json:"name"`
			Email        string `json:"email"`
			Professional bool   `json:"professional"`
		} `json:"details"`
	}
	if err := c.post(ctx, "/accountDetails", req, &resp); err != nil {
		return model.Account{}, err
	}
	return model.Account{
		Name:         resp.Details.Name,
		Email:        resp.Details.Email,
		Professional: resp.Details.Professional,
	}, nil
}

// ChangeEmail updates the signed-in user's email address.
func (c *Client) ChangeEmail(ctx context.Context, creds model.Credentials, newEmail string) error {
	req := struct {
		UserID    int64  `json:"userID"`
		AuthToken string `json:"authToken"`
		NewEmail  string `json:"newEmail"`
	}{creds.UserID, creds.AuthToken, newEmail}

	var resp responseError
	return c.post(ctx, "/changeEmail", req, &resp)
}
