package dto

import (
	"time"

	"github.com/unity-hallie/freezer-backend/internal/models"
)

type CreateHouseholdRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateHouseholdRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type JoinHouseholdRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// HouseholdResponse includes the invite code. It is only ever built for
// members, who are exactly the people allowed to share the code.
type HouseholdResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `json:"invite_code"`
	OwnerID     uint64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberResponse struct {
	UserID   uint64    `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	JoinedAt time.Time `json:"joined_at"`
}

type HouseholdDetailResponse struct {
	HouseholdResponse
	Members []MemberResponse `json:"members"`
}

func NewHouseholdResponse(h *models.Household) HouseholdResponse {
	return HouseholdResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		InviteCode:  h.InviteCode,
		OwnerID:     h.OwnerID,
		CreatedAt:   h.CreatedAt,
	}
}

func NewHouseholdDetailResponse(h *models.Household, members []models.HouseholdMember) HouseholdDetailResponse {
	resp := HouseholdDetailResponse{
		HouseholdResponse: NewHouseholdResponse(h),
		Members:           make([]MemberResponse, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, MemberResponse{
			UserID:   m.UserID,
			Email:    m.User.Email,
			FullName: m.User.FullName,
			JoinedAt: m.JoinedAt,
		})
	}
	return resp
}
