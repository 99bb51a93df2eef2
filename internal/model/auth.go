package model

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token      string       `json:"token"`
	User       UserResponse `json:"user"`
	Role       *Role        `json:"role"`
	Privileges []string     `json:"privileges"`
}

// Principal flattens the response into the session principal.
func (r *LoginResponse) Principal() Principal {
	p := Principal{
		ID:          r.User.ID.String(),
		Username:    r.User.Username,
		DisplayName: r.User.FullName,
		Permissions: NewPermissionSet(r.Privileges...),
	}
	if r.Role != nil {
		p.Role = r.Role.Code
	}
	return p
}

// PermissionsResponse is the body of the permission refresh endpoint.
type PermissionsResponse struct {
	Privileges []string `json:"privileges"`
}
