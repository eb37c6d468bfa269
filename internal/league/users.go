package league

import "context"

// Users lista los usuarios del sistema (admin).
func (c *Client) Users(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser actualiza nombre, correo o rol de un usuario.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, user User) error {
	return c.put(ctx, pathID("/users", id), token, user, nil)
}

// DeleteUser elimina un usuario.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, pathID("/users", id), token)
}

// DisableUser deshabilita la cuenta sin eliminarla.
func (c *Client) DisableUser(ctx context.Context, token string, id int64) error {
	return c.put(ctx, pathID("/users", id)+"/disable", token, nil, nil)
}

// RepresentativeUsers lista los usuarios con rol JUGADOR, candidatos a
// representante de equipo.
func (c *Client) RepresentativeUsers(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users/players", token, &users); err != nil {
		return nil, err
	}
	return users, nil
}
