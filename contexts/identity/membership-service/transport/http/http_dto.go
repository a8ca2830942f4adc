package http

type RoleChangeRequest struct {
	Role string `json:"role"`
}

type MemberResponse struct {
	MemberID  string   `json:"member_id"`
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles"`
	UpdatedAt string   `json:"updated_at"`
}
