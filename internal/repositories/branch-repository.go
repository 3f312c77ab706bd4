package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"org-registry/internal/entities"
)

const branchTable = "branches"

var branchColumns = []string{
	"b.id", "b.organization_id", "b.name", "b.postal_address",
	"b.director_last_name", "b.director_first_name", "b.director_middle_name",
	"b.branch_director_birth_date",
}

// Филиалы живут только внутри организации, поэтому отдельного
// публичного CRUD нет: их читает и пишет OrganizationRepository.
type BranchRepositoryInterface interface {
	FindByOrganizationIDs(ctx context.Context, q Querier, organizationIDs []uint64) (map[uint64][]entities.Branch, error)
	ReplaceForOrganization(ctx context.Context, tx pgx.Tx, organizationID uint64, branches []entities.Branch) error
	FindOwnerIDs(ctx context.Context, q Querier, branchIDs []uint64) ([]uint64, error)
}

type BranchRepository struct{}

func NewBranchRepository() BranchRepositoryInterface {
	return &BranchRepository{}
}

func scanBranch(row pgx.Row) (*entities.Branch, error) {
	var b entities.Branch
	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.Name, &b.PostalAddress,
		&b.DirectorLastName, &b.DirectorFirstName, &b.DirectorMiddleName,
		&b.DirectorBirthDate,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования branch: %w", mapPostgresError(err))
	}
	return &b, nil
}

func (r *BranchRepository) FindByOrganizationIDs(ctx context.Context, q Querier, organizationIDs []uint64) (map[uint64][]entities.Branch, error) {
	result := make(map[uint64][]entities.Branch, len(organizationIDs))
	if len(organizationIDs) == 0 {
		return result, nil
	}

	query, args, err := psql.Select(branchColumns...).
		From(branchTable + " AS b").
		Where(sq.Eq{"b.organization_id": organizationIDs}).
		OrderBy("b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса филиалов: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPostgresError(err)
	}
	defer rows.Close()

	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		result[branch.OrganizationID] = append(result[branch.OrganizationID], *branch)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPostgresError(err)
	}
	return result, nil
}

// FindOwnerIDs - организации, которым сейчас принадлежат филиалы с этими id.
func (r *BranchRepository) FindOwnerIDs(ctx context.Context, q Querier, branchIDs []uint64) ([]uint64, error) {
	owners := make([]uint64, 0)
	if len(branchIDs) == 0 {
		return owners, nil
	}

	query, args, err := psql.Select("DISTINCT b.organization_id").
		From(branchTable + " AS b").
		Where(sq.Eq{"b.id": branchIDs}).
		OrderBy("b.organization_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса владельцев филиалов: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPostgresError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, mapPostgresError(err)
		}
		owners = append(owners, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPostgresError(err)
	}
	return owners, nil
}

// ReplaceForOrganization - полная замена набора филиалов: старые удаляются,
// переданные вставляются. Филиал с чужим id переходит к этой организации.
func (r *BranchRepository) ReplaceForOrganization(ctx context.Context, tx pgx.Tx, organizationID uint64, branches []entities.Branch) error {
	if _, err := tx.Exec(ctx, `DELETE FROM branches WHERE organization_id = $1`, organizationID); err != nil {
		return mapPostgresError(err)
	}
	if len(branches) == 0 {
		return nil
	}

	query, args, err := branchUpsertQuery(organizationID, branches).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса филиалов: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return mapPostgresError(err)
	}
	return nil
}

func branchUpsertQuery(organizationID uint64, branches []entities.Branch) sq.InsertBuilder {
	builder := psql.Insert(branchTable).Columns(
		"id", "organization_id", "name", "postal_address",
		"director_last_name", "director_first_name", "director_middle_name",
		"branch_director_birth_date",
	)
	for _, b := range branches {
		builder = builder.Values(
			b.ID, organizationID, b.Name, b.PostalAddress,
			b.DirectorLastName, b.DirectorFirstName, b.DirectorMiddleName,
			b.DirectorBirthDate,
		)
	}
	return builder.Suffix(upsertSuffix(
		"organization_id", "name", "postal_address",
		"director_last_name", "director_first_name", "director_middle_name",
		"branch_director_birth_date",
	))
}
