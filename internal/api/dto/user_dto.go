package dto

// ProfileResponse describes the authenticated caller.
type ProfileResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
	Role            string `json:"role"`
}

// UpdateRoleRequest assigns a role to the user identified by email.
type UpdateRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=agent manager admin"`
}
