package model

// Principal is the signed-in user together with the flattened permission set of their role.
type Principal struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name"`
	Role        string        `json:"role"`
	Permissions PermissionSet `json:"permissions"`
}

// WithPermissions returns a copy of p carrying tokens as its permission set.
func (p Principal) WithPermissions(tokens []string) Principal {
	p.Permissions = NewPermissionSet(tokens...)
	return p
}
