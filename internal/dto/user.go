package dto

import (
	"time"

	"github.com/vincecoscia/retriever-ai/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MembershipDTO represents one of a user's organization memberships
type MembershipDTO struct {
	Organization OrganizationDTO   `json:"organization"`
	Role         models.MemberRole `json:"role"`
	JoinedAt     time.Time         `json:"joined_at"`
}

// UserListItemDTO is a user row in the admin users listing
type UserListItemDTO struct {
	UserDTO
	Memberships []MembershipDTO `json:"memberships"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToMembershipDTO converts a membership to DTO
func ToMembershipDTO(member models.Member) MembershipDTO {
	return MembershipDTO{
		Organization: ToOrganizationDTO(member.Organization),
		Role:         member.Role,
		JoinedAt:     member.JoinedAt,
	}
}

// ToUserListItemDTO converts a user with preloaded memberships
func ToUserListItemDTO(user models.User) UserListItemDTO {
	memberships := make([]MembershipDTO, len(user.Memberships))
	for i, m := range user.Memberships {
		memberships[i] = ToMembershipDTO(m)
	}
	return UserListItemDTO{
		UserDTO:     ToUserDTO(user),
		Memberships: memberships,
	}
}
