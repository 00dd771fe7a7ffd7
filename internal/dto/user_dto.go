package dto

// Upload is a request file already saved to the local temp directory.
type Upload struct {
	Path string
}

type RegisterRequest struct {
	Username   string  `json:"username" form:"username"`
	Email      string  `json:"email" form:"email"`
	FullName   string  `json:"fullName" form:"fullName"`
	Password   string  `json:"password" form:"password"`
	Avatar     *Upload `json:"-" form:"-"`
	CoverImage *Upload `json:"-" form:"-"`
}

// LoginRequest identifies the account by username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
