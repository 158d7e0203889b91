package dto

import (
	"time"

	"github.com/vincecoscia/retriever-ai/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationDTO represents a location in API responses
type LocationDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip,omitempty"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyDTO represents a company with its locations
type CompanyDTO struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Locations []LocationDTO `json:"locations"`
}

// ClientMemberDTO represents a member row in the clients listing
type ClientMemberDTO struct {
	User UserDTO           `json:"user"`
	Role models.MemberRole `json:"role"`
}

// ClientDTO is one client organization with its full hierarchy
type ClientDTO struct {
	OrganizationDTO
	Companies []CompanyDTO      `json:"companies"`
	Members   []ClientMemberDTO `json:"members"`
}

// PipelineDTO is one row of the pipelines listing: a location with its
// ownership chain and the state the ingestion pipeline keys off.
type PipelineDTO struct {
	LocationID       uint64    `json:"location_id"`
	LocationName     string    `json:"location_name"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	IsActive         bool      `json:"is_active"`
	CompanyName      string    `json:"company_name"`
	OrganizationName string    `json:"organization_name"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		CreatedAt: org.CreatedAt,
	}
}

// ToLocationDTO converts a Location model to LocationDTO
func ToLocationDTO(location models.Location) LocationDTO {
	return LocationDTO{
		ID:        location.ID,
		Name:      location.Name,
		Address:   location.Address,
		City:      location.City,
		State:     location.State,
		Zip:       location.Zip,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		IsActive:  location.IsActive,
		CreatedAt: location.CreatedAt,
	}
}

// ToCompanyDTO converts a company with preloaded locations
func ToCompanyDTO(company models.Company) CompanyDTO {
	locations := make([]LocationDTO, len(company.Locations))
	for i, l := range company.Locations {
		locations[i] = ToLocationDTO(l)
	}
	return CompanyDTO{
		ID:        company.ID,
		Name:      company.Name,
		Locations: locations,
	}
}

// ToClientDTO converts an organization with preloaded hierarchy
func ToClientDTO(org models.Organization) ClientDTO {
	companies := make([]CompanyDTO, len(org.Companies))
	for i, c := range org.Companies {
		companies[i] = ToCompanyDTO(c)
	}

	members := make([]ClientMemberDTO, len(org.Members))
	for i, m := range org.Members {
		members[i] = ClientMemberDTO{
			User: ToUserDTO(m.User),
			Role: m.Role,
		}
	}

	return ClientDTO{
		OrganizationDTO: ToOrganizationDTO(org),
		Companies:       companies,
		Members:         members,
	}
}

// ToClientDTOs converts a listing of organizations
func ToClientDTOs(orgs []models.Organization) []ClientDTO {
	clients := make([]ClientDTO, len(orgs))
	for i, org := range orgs {
		clients[i] = ToClientDTO(org)
	}
	return clients
}

// ToPipelineDTO converts a location with preloaded company and organization
func ToPipelineDTO(location models.Location) PipelineDTO {
	return PipelineDTO{
		LocationID:       location.ID,
		LocationName:     location.Name,
		City:             location.City,
		State:            location.State,
		Latitude:         location.Latitude,
		Longitude:        location.Longitude,
		IsActive:         location.IsActive,
		CompanyName:      location.Company.Name,
		OrganizationName: location.Company.Organization.Name,
		CreatedAt:        location.CreatedAt,
	}
}

// ToPipelineDTOs converts a listing of locations
func ToPipelineDTOs(locations []models.Location) []PipelineDTO {
	pipelines := make([]PipelineDTO, len(locations))
	for i, l := range locations {
		pipelines[i] = ToPipelineDTO(l)
	}
	return pipelines
}
