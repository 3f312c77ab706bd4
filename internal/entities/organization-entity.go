package entities

import (
	"github.com/aarondl/null/v8"
)

// Organization - юридическое лицо. Ключ задает вызывающая сторона.
type Organization struct {
	ID                 uint64      `json:"id"`
	FullName           null.String `json:"full_name"`
	ShortName          null.String `json:"short_name"`
	INN                null.String `json:"inn"`
	OGRN               null.String `json:"ogrn"`
	PostalAddress      null.String `json:"postal_address"`
	LegalAddress       null.String `json:"legal_address"`
	DirectorLastName   null.String `json:"director_last_name"`
	DirectorFirstName  null.String `json:"director_first_name"`
	DirectorMiddleName null.String `json:"director_middle_name"`
	DirectorBirthDate  null.Time   `json:"director_birth_date"`

	Branches []Branch `json:"branches"`
}
