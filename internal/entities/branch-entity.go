package entities

import (
	"github.com/aarondl/null/v8"
)

// Branch - филиал. OrganizationID только ссылка на владельца.
type Branch struct {
	ID                 uint64      `json:"id"`
	OrganizationID     uint64      `json:"organization_id"`
	Name               null.String `json:"name"`
	PostalAddress      null.String `json:"postal_address"`
	DirectorLastName   null.String `json:"director_last_name"`
	DirectorFirstName  null.String `json:"director_first_name"`
	DirectorMiddleName null.String `json:"director_middle_name"`
	DirectorBirthDate  null.Time   `json:"director_birth_date"`
}
