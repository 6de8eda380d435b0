package dto

import "github.com/momentglow/diary-service/internal/model"

type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token   string           `json:"token"`
	Refresh string           `json:"refresh"`
	User    model.UserAuthor `json:"user"`
}

type RefreshResponse struct {
	Token string `json:"token"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
	HasAvatar bool   `json:"has_avatar"`
}

type UploadAvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
	Filename  string `json:"filename"`
}
