package dto

import "time"

type CreateServiceRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	Prefix            string `json:"prefix" validate:"required,min=1,max=4,alphanum"`
	MinAge            *int   `json:"min_age,omitempty" validate:"omitempty,gte=0,lte=130"`
	MaxAge            *int   `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=130"`
	GenderRestriction string `json:"gender_restriction,omitempty" validate:"omitempty,oneof=MALE FEMALE NONE"`
}

type UpdateServiceRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Prefix            *string `json:"prefix,omitempty" validate:"omitempty,min=1,max=4,alphanum"`
	MinAge            *int    `json:"min_age,omitempty" validate:"omitempty,gte=0,lte=130"`
	MaxAge            *int    `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=130"`
	GenderRestriction *string `json:"gender_restriction,omitempty" validate:"omitempty,oneof=MALE FEMALE NONE"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

type ServiceResponse struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Prefix            string    `json:"prefix"`
	MinAge            int       `json:"min_age"`
	MaxAge            int       `json:"max_age"`
	GenderRestriction string    `json:"gender_restriction"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
