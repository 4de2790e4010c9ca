package handler

import (
	"github.com/duckcorp/portal/internal/core/domain"
)

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required"`
}

type setRoleRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Role     string `json:"role"     form:"role"     validate:"required"`
}

type addTagRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Tag      string `json:"tag"      form:"tag"      validate:"required"`
}

type createTagRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

// Text is checked by the log itself so whitespace-only bodies report EmptyContent.
type postEntryRequest struct {
	Text string `json:"text" form:"text"`
}

type blacklistRequest struct {
	IP string `json:"ip" form:"ip" validate:"required"`
}

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  string `json:"code,omitempty"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type sessionResponse struct {
	Token string          `json:"token,omitempty"`
	User  *domain.Session `json:"user"`
}

type userView struct {
	Role domain.Role `json:"role"`
	Tags []string    `json:"tags"`
}

func toUserViews(users domain.Users) map[string]userView {
	out := make(map[string]userView, len(users))
	for name, u := range users {
		out[name] = userView{Role: u.Role, Tags: u.Tags.Sorted()}
	}
	return out
}
