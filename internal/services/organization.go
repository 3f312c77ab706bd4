package services

import (
	"context"

	"go.uber.org/zap"

	"org-registry/internal/entities"
	"org-registry/internal/repositories"
)

type OrganizationServiceInterface interface {
	GetAllOrganizations(ctx context.Context) ([]entities.Organization, error)
	GetOrganizationByID(ctx context.Context, id uint64) (*entities.Organization, error)
	CreateOrganization(ctx context.Context, organization entities.Organization) (*entities.Organization, error)
	UpdateOrganization(ctx context.Context, id uint64, organization entities.Organization) (*entities.Organization, error)
	DeleteOrganization(ctx context.Context, id uint64) error
	SearchOrganizations(ctx context.Context, query string) ([]entities.Organization, error)
}

// OrganizationService не хранит состояние между вызовами: все идет в репозиторий.
type OrganizationService struct {
	organizationRepository repositories.OrganizationRepositoryInterface
	logger                 *zap.Logger
}

func NewOrganizationService(organizationRepository repositories.OrganizationRepositoryInterface, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{
		organizationRepository: organizationRepository,
		logger:                 logger,
	}
}

func (s *OrganizationService) GetAllOrganizations(ctx context.Context) ([]entities.Organization, error) {
	organizations, err := s.organizationRepository.FindAll(ctx)
	if err != nil {
		s.logger.Error("Ошибка при получении списка организаций", zap.Error(err))
		return nil, err
	}
	return organizations, nil
}

// GetOrganizationByID возвращает apperrors.ErrNotFound, если записи нет.
func (s *OrganizationService) GetOrganizationByID(ctx context.Context, id uint64) (*entities.Organization, error) {
	return s.organizationRepository.FindByID(ctx, id)
}

// CreateOrganization сохраняет организацию как есть. Совпадение id - перезапись.
func (s *OrganizationService) CreateOrganization(ctx context.Context, organization entities.Organization) (*entities.Organization, error) {
	organization.Branches = attachBranches(organization.ID, organization.Branches)

	created, err := s.organizationRepository.Save(ctx, organization)
	if err != nil {
		s.logger.Error("Ошибка при создании организации", zap.Uint64("id", organization.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Организация создана", zap.Uint64("id", created.ID), zap.Int("branches", len(created.Branches)))
	return created, nil
}

// UpdateOrganization - полная замена: все поля и весь набор филиалов берутся
// из organization, даже пустые. Частичного обновления нет.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, id uint64, organization entities.Organization) (*entities.Organization, error) {
	existing, err := s.organizationRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.FullName = organization.FullName
	existing.ShortName = organization.ShortName
	existing.INN = organization.INN
	existing.OGRN = organization.OGRN
	existing.PostalAddress = organization.PostalAddress
	existing.LegalAddress = organization.LegalAddress
	existing.DirectorLastName = organization.DirectorLastName
	existing.DirectorFirstName = organization.DirectorFirstName
	existing.DirectorMiddleName = organization.DirectorMiddleName
	existing.DirectorBirthDate = organization.DirectorBirthDate
	existing.Branches = attachBranches(existing.ID, organization.Branches)

	updated, err := s.organizationRepository.Save(ctx, *existing)
	if err != nil {
		s.logger.Error("Ошибка при обновлении организации", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Организация обновлена", zap.Uint64("id", id), zap.Int("branches", len(updated.Branches)))
	return updated, nil
}

// DeleteOrganization не считает отсутствие записи ошибкой.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, id uint64) error {
	if err := s.organizationRepository.DeleteByID(ctx, id); err != nil {
		s.logger.Error("Ошибка при удалении организации", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Организация удалена", zap.Uint64("id", id))
	return nil
}

// SearchOrganizations - подстрока query в любом из девяти текстовых полей.
func (s *OrganizationService) SearchOrganizations(ctx context.Context, query string) ([]entities.Organization, error) {
	organizations, err := s.organizationRepository.Search(ctx, query)
	if err != nil {
		s.logger.Error("Ошибка при поиске организаций", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return organizations, nil
}

// attachBranches проставляет владельца каждому филиалу. Исходный слайс не трогаем.
func attachBranches(organizationID uint64, branches []entities.Branch) []entities.Branch {
	attached := make([]entities.Branch, len(branches))
	for i, b := range branches {
		b.OrganizationID = organizationID
		attached[i] = b
	}
	return attached
}
