package services

import (
	"fmt"
	"time"

	"github.com/aarondl/null/v8"

	"org-registry/internal/dto"
	"org-registry/internal/entities"
	apperrors "org-registry/pkg/errors"
	"org-registry/pkg/validation"
)

// OrganizationFromDTO переводит тело запроса в сущность. Ошибка только на некорректной дате.
func OrganizationFromDTO(in dto.OrganizationDTO) (entities.Organization, error) {
	birthDate, err := parseDate(in.DirectorBirthDate)
	if err != nil {
		return entities.Organization{}, err
	}

	branches := make([]entities.Branch, 0, len(in.Branches))
	for _, b := range in.Branches {
		branch, err := branchFromDTO(b)
		if err != nil {
			return entities.Organization{}, err
		}
		branches = append(branches, branch)
	}

	return entities.Organization{
		ID:                 in.ID,
		FullName:           in.FullName,
		ShortName:          in.ShortName,
		INN:                in.INN,
		OGRN:               in.OGRN,
		PostalAddress:      in.PostalAddress,
		LegalAddress:       in.LegalAddress,
		DirectorLastName:   in.DirectorLastName,
		DirectorFirstName:  in.DirectorFirstName,
		DirectorMiddleName: in.DirectorMiddleName,
		DirectorBirthDate:  birthDate,
		Branches:           branches,
	}, nil
}

func branchFromDTO(in dto.BranchDTO) (entities.Branch, error) {
	birthDate, err := parseDate(in.DirectorBirthDate)
	if err != nil {
		return entities.Branch{}, err
	}
	return entities.Branch{
		ID:                 in.ID,
		OrganizationID:     in.OrganizationID,
		Name:               in.Name,
		PostalAddress:      in.PostalAddress,
		DirectorLastName:   in.DirectorLastName,
		DirectorFirstName:  in.DirectorFirstName,
		DirectorMiddleName: in.DirectorMiddleName,
		DirectorBirthDate:  birthDate,
	}, nil
}

func OrganizationToDTO(o entities.Organization) dto.OrganizationDTO {
	branches := make([]dto.BranchDTO, 0, len(o.Branches))
	for _, b := range o.Branches {
		branches = append(branches, BranchToDTO(b))
	}
	return dto.OrganizationDTO{
		ID:                 o.ID,
		FullName:           o.FullName,
		ShortName:          o.ShortName,
		INN:                o.INN,
		OGRN:               o.OGRN,
		PostalAddress:      o.PostalAddress,
		LegalAddress:       o.LegalAddress,
		DirectorLastName:   o.DirectorLastName,
		DirectorFirstName:  o.DirectorFirstName,
		DirectorMiddleName: o.DirectorMiddleName,
		DirectorBirthDate:  formatDate(o.DirectorBirthDate),
		Branches:           branches,
	}
}

func OrganizationsToDTO(list []entities.Organization) []dto.OrganizationDTO {
	out := make([]dto.OrganizationDTO, 0, len(list))
	for _, o := range list {
		out = append(out, OrganizationToDTO(o))
	}
	return out
}

func BranchToDTO(b entities.Branch) dto.BranchDTO {
	return dto.BranchDTO{
		ID:                 b.ID,
		OrganizationID:     b.OrganizationID,
		Name:               b.Name,
		PostalAddress:      b.PostalAddress,
		DirectorLastName:   b.DirectorLastName,
		DirectorFirstName:  b.DirectorFirstName,
		DirectorMiddleName: b.DirectorMiddleName,
		DirectorBirthDate:  formatDate(b.DirectorBirthDate),
	}
}

// parseDate: null и "" - даты нет.
func parseDate(s null.String) (null.Time, error) {
	if !s.Valid || s.String == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse(validation.DateLayout, s.String)
	if err != nil {
		return null.Time{}, fmt.Errorf("%w: некорректная дата %q", apperrors.ErrBadRequest, s.String)
	}
	return null.TimeFrom(t), nil
}

func formatDate(t null.Time) null.String {
	if !t.Valid {
		return null.String{}
	}
	return null.StringFrom(t.Time.Format(validation.DateLayout))
}
