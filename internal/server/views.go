package server

import (
	"time"

	"lol-tracker/internal/domain"
)

type userView struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdDate"`
	UpdatedAt time.Time   `json:"updatedDate"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type loginView struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	ExpiresIn int64    `json:"expiresIn"`
	User      userView `json:"user"`
}

type boardView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorID  int64     `json:"authorId"`
	ViewCount int       `json:"viewCount"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func toBoardView(b *domain.Board) boardView {
	return boardView{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Author:    b.AuthorName,
		AuthorID:  b.AuthorID,
		ViewCount: b.ViewCount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBoardViews(boards []domain.Board) []boardView {
	out := make([]boardView, 0, len(boards))
	for i := range boards {
		out = append(out, toBoardView(&boards[i]))
	}
	return out
}

type boardPageView struct {
	Content       []boardView `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int         `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

type userStatsView struct {
	TotalUsers       int        `json:"totalUsers"`
	AdminUsers       int        `json:"adminUsers"`
	RegularUsers     int        `json:"regularUsers"`
	RecentSignups    int        `json:"recentSignups"`
	LatestSignupDate *time.Time `json:"latestSignupDate"`
}

type authorStatsView struct {
	Author     string     `json:"author"`
	PostCount  int        `json:"postCount"`
	TotalViews int        `json:"totalViews"`
	LatestPost *time.Time `json:"latestPost"`
}
