package members

// RegisterRequest creates one member. member_id 0 means "assign the next
// sequential id". contact_confirm, when present, must repeat contact — the
// double-entry rule the registration form enforced.
type RegisterRequest struct {
	MemberID       int64   `json:"member_id"`
	Name           string  `json:"name" binding:"required"`
	Contact        string  `json:"contact" binding:"required"`
	ContactConfirm *string `json:"contact_confirm,omitempty"`
}

type LoginRequest struct {
	MemberID int64  `json:"member_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type MemberResponse struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
}

type LoginResponse struct {
	MemberResponse
	Token string `json:"token"`
}

func toResponse(m *Member) MemberResponse {
	return MemberResponse{MemberID: m.MemberID, Name: m.Name, Contact: m.Contact}
}
