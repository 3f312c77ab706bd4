package seeders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"org-registry/internal/entities"
	"org-registry/internal/repositories"
)

// SeedOrganizations наполняет БД демо-организациями с филиалами.
func SeedOrganizations(ctx context.Context, repo repositories.OrganizationRepositoryInterface, logger *zap.Logger) error {
	logger.Info("Запуск наполнения организаций", zap.Int("count", len(organizationsData)))

	for _, o := range organizationsData {
		branches := make([]entities.Branch, len(o.Branches))
		for i, b := range o.Branches {
			b.OrganizationID = o.ID
			branches[i] = b
		}
		o.Branches = branches

		if _, err := repo.Save(ctx, o); err != nil {
			return fmt.Errorf("ошибка наполнения организации %d: %w", o.ID, err)
		}
		logger.Info("Организация сохранена", zap.Uint64("id", o.ID), zap.Int("branches", len(o.Branches)))
	}

	logger.Info("Наполнение организаций завершено")
	return nil
}
