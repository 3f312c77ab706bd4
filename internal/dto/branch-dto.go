package dto

import "github.com/aarondl/null/v8"

type BranchDTO struct {
	ID                 uint64      `json:"id" validate:"required"`
	OrganizationID     uint64      `json:"organization_id,omitempty"`
	Name               null.String `json:"name" validate:"omitempty,max=255"`
	PostalAddress      null.String `json:"postal_address" validate:"omitempty,max=255"`
	DirectorLastName   null.String `json:"director_last_name" validate:"omitempty,max=255"`
	DirectorFirstName  null.String `json:"director_first_name" validate:"omitempty,max=255"`
	DirectorMiddleName null.String `json:"director_middle_name" validate:"omitempty,max=255"`
	DirectorBirthDate  null.String `json:"director_birth_date" validate:"omitempty,date_ymd"`
}
