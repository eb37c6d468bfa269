package league

import "context"

// Login autentica contra el backend y devuelve el bearer token emitido.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp LoginResponse
	err := c.post(ctx, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register crea un usuario nuevo; requiere token de ADMIN.
func (c *Client) Register(ctx context.Context, token string, req RegisterRequest) error {
	return c.post(ctx, "/auth/register", token, req, nil)
}

// ForgotPassword dispara el correo de recuperación.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

// ResetPassword consume el token de recuperación y fija la contraseña nueva.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return c.post(ctx, "/auth/reset-password", "", map[string]string{
		"token":       resetToken,
		"newPassword": newPassword,
	}, nil)
}
