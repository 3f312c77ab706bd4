package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"org-registry/internal/entities"
)

const organizationCacheKeyPrefix = "organization:"

func organizationCacheKey(id uint64) string {
	return fmt.Sprintf("%s%d", organizationCacheKeyPrefix, id)
}

// BranchOwnersFinder отвечает, каким организациям сейчас принадлежат филиалы.
type BranchOwnersFinder interface {
	FindBranchOwners(ctx context.Context, branchIDs []uint64) ([]uint64, error)
}

// CachedOrganizationRepository кеширует FindByID. Списки и поиск всегда идут в БД.
// Любая запись сначала уходит в БД, затем сбрасывает ключ. Ошибки кеша не
// ломают запрос: пишем warning и работаем напрямую с БД.
type CachedOrganizationRepository struct {
	next   OrganizationRepositoryInterface
	owners BranchOwnersFinder
	cache  CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedOrganizationRepository(
	next OrganizationRepositoryInterface,
	owners BranchOwnersFinder,
	cache CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) OrganizationRepositoryInterface {
	return &CachedOrganizationRepository{next: next, owners: owners, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachedOrganizationRepository) FindAll(ctx context.Context) ([]entities.Organization, error) {
	return r.next.FindAll(ctx)
}

func (r *CachedOrganizationRepository) Search(ctx context.Context, query string) ([]entities.Organization, error) {
	return r.next.Search(ctx, query)
}

func (r *CachedOrganizationRepository) FindByID(ctx context.Context, id uint64) (*entities.Organization, error) {
	key := organizationCacheKey(id)

	raw, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached entities.Organization
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return &cached, nil
		}
		r.logger.Warn("Битая запись в кеше организаций", zap.String("key", key))
	case !errors.Is(err, ErrCacheMiss):
		r.logger.Warn("Кеш организаций недоступен", zap.String("key", key), zap.Error(err))
	}

	organization, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(organization); err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl); err != nil {
			r.logger.Warn("Не удалось записать организацию в кеш", zap.String("key", key), zap.Error(err))
		}
	}
	return organization, nil
}

// Save сбрасывает ключ сохраненной организации и ключи прежних владельцев
// филиалов: филиал с чужим id переходит к сохраняемой организации.
func (r *CachedOrganizationRepository) Save(ctx context.Context, organization entities.Organization) (*entities.Organization, error) {
	branchIDs := make([]uint64, 0, len(organization.Branches))
	for _, b := range organization.Branches {
		branchIDs = append(branchIDs, b.ID)
	}
	previousOwners, err := r.owners.FindBranchOwners(ctx, branchIDs)
	if err != nil {
		return nil, err
	}

	saved, err := r.next.Save(ctx, organization)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, append(previousOwners, organization.ID)...)
	return saved, nil
}

func (r *CachedOrganizationRepository) DeleteByID(ctx context.Context, id uint64) error {
	if err := r.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedOrganizationRepository) invalidate(ctx context.Context, ids ...uint64) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, organizationCacheKey(id))
	}
	if err := r.cache.Del(ctx, keys...); err != nil {
		r.logger.Warn("Не удалось сбросить кеш организаций", zap.Uint64s("ids", ids), zap.Error(err))
	}
}
