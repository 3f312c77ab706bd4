package dto

import "github.com/aarondl/null/v8"

// OrganizationDTO - и тело запроса (create/update), и ответ.
// Update заменяет все поля целиком: отсутствующее поле становится null.
// На update ключ берется из пути, поле id в теле игнорируется.
type OrganizationDTO struct {
	ID                 uint64      `json:"id"`
	FullName           null.String `json:"full_name" validate:"omitempty,max=255"`
	ShortName          null.String `json:"short_name" validate:"omitempty,max=255"`
	INN                null.String `json:"inn" validate:"omitempty,max=255"`
	OGRN               null.String `json:"ogrn" validate:"omitempty,max=255"`
	PostalAddress      null.String `json:"postal_address" validate:"omitempty,max=255"`
	LegalAddress       null.String `json:"legal_address" validate:"omitempty,max=255"`
	DirectorLastName   null.String `json:"director_last_name" validate:"omitempty,max=255"`
	DirectorFirstName  null.String `json:"director_first_name" validate:"omitempty,max=255"`
	DirectorMiddleName null.String `json:"director_middle_name" validate:"omitempty,max=255"`
	DirectorBirthDate  null.String `json:"director_birth_date" validate:"omitempty,date_ymd"`
	Branches           []BranchDTO `json:"branches" validate:"omitempty,dive"`
}
