package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"org-registry/internal/entities"
)

const organizationTable = "organizations"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var organizationColumns = []string{
	"o.id", "o.full_name", "o.short_name", "o.inn", "o.ogrn",
	"o.postal_address", "o.legal_address",
	"o.director_last_name", "o.director_first_name", "o.director_middle_name",
	"o.director_birth_date",
}

// Поля, по которым работает поиск. Дата рождения и филиалы не участвуют.
var organizationSearchColumns = []string{
	"o.full_name", "o.short_name", "o.inn", "o.ogrn",
	"o.postal_address", "o.legal_address",
	"o.director_last_name", "o.director_first_name", "o.director_middle_name",
}

type OrganizationRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entities.Organization, error)
	FindByID(ctx context.Context, id uint64) (*entities.Organization, error)
	Save(ctx context.Context, organization entities.Organization) (*entities.Organization, error)
	DeleteByID(ctx context.Context, id uint64) error
	Search(ctx context.Context, query string) ([]entities.Organization, error)
}

type OrganizationRepository struct {
	storage          *pgxpool.Pool
	txManager        TxManagerInterface
	branchRepository BranchRepositoryInterface
	logger           *zap.Logger
}

func NewOrganizationRepository(
	storage *pgxpool.Pool,
	txManager TxManagerInterface,
	branchRepository BranchRepositoryInterface,
	logger *zap.Logger,
) *OrganizationRepository {
	return &OrganizationRepository{
		storage:          storage,
		txManager:        txManager,
		branchRepository: branchRepository,
		logger:           logger,
	}
}

// -----------------------------------------------------------
// SCAN
// -----------------------------------------------------------

func scanOrganization(row pgx.Row) (*entities.Organization, error) {
	var o entities.Organization
	err := row.Scan(
		&o.ID, &o.FullName, &o.ShortName, &o.INN, &o.OGRN,
		&o.PostalAddress, &o.LegalAddress,
		&o.DirectorLastName, &o.DirectorFirstName, &o.DirectorMiddleName,
		&o.DirectorBirthDate,
	)
	if err != nil {
		return nil, mapPostgresError(err)
	}
	return &o, nil
}

// -----------------------------------------------------------
// QUERIES
// -----------------------------------------------------------

func selectOrganizations() sq.SelectBuilder {
	return psql.Select(organizationColumns...).From(organizationTable + " AS o")
}

// organizationSearchPredicate - OR из девяти LIKE с одним шаблоном %query%.
// Спецсимволы LIKE внутри query не экранируются.
func organizationSearchPredicate(query string) sq.Or {
	pattern := "%" + query + "%"
	predicate := make(sq.Or, 0, len(organizationSearchColumns))
	for _, col := range organizationSearchColumns {
		predicate = append(predicate, sq.Like{col: pattern})
	}
	return predicate
}

func searchOrganizationsQuery(query string) sq.SelectBuilder {
	return selectOrganizations().Where(organizationSearchPredicate(query)).OrderBy("o.id")
}

// upsertSuffix - ON CONFLICT (id) DO UPDATE для перечисленных колонок.
func upsertSuffix(columns ...string) string {
	sets := make([]string, 0, len(columns))
	for _, col := range columns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func organizationUpsertQuery(o entities.Organization) sq.InsertBuilder {
	return psql.Insert(organizationTable).
		Columns(
			"id", "full_name", "short_name", "inn", "ogrn",
			"postal_address", "legal_address",
			"director_last_name", "director_first_name", "director_middle_name",
			"director_birth_date",
		).
		Values(
			o.ID, o.FullName, o.ShortName, o.INN, o.OGRN,
			o.PostalAddress, o.LegalAddress,
			o.DirectorLastName, o.DirectorFirstName, o.DirectorMiddleName,
			o.DirectorBirthDate,
		).
		Suffix(upsertSuffix(
			"full_name", "short_name", "inn", "ogrn",
			"postal_address", "legal_address",
			"director_last_name", "director_first_name", "director_middle_name",
			"director_birth_date",
		))
}

// -----------------------------------------------------------
// READ
// -----------------------------------------------------------

// list выполняет запрос и одним запросом подгружает филиалы всех найденных организаций.
func (r *OrganizationRepository) list(ctx context.Context, q Querier, builder sq.SelectBuilder) ([]entities.Organization, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса организаций: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPostgresError(err)
	}
	defer rows.Close()

	organizations := make([]entities.Organization, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		organizations = append(organizations, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPostgresError(err)
	}
	rows.Close()

	branches, err := r.branchRepository.FindByOrganizationIDs(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range organizations {
		organizations[i].Branches = branchesOrEmpty(branches[organizations[i].ID])
	}
	return organizations, nil
}

func (r *OrganizationRepository) findOne(ctx context.Context, q Querier, id uint64) (*entities.Organization, error) {
	query, args, err := selectOrganizations().Where(sq.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса организации: %w", err)
	}

	o, err := scanOrganization(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	branches, err := r.branchRepository.FindByOrganizationIDs(ctx, q, []uint64{id})
	if err != nil {
		return nil, err
	}
	o.Branches = branchesOrEmpty(branches[id])
	return o, nil
}

func (r *OrganizationRepository) FindAll(ctx context.Context) ([]entities.Organization, error) {
	return r.list(ctx, r.storage, selectOrganizations().OrderBy("o.id"))
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uint64) (*entities.Organization, error) {
	return r.findOne(ctx, r.storage, id)
}

// FindBranchOwners - id организаций, которые сейчас владеют филиалами branchIDs.
func (r *OrganizationRepository) FindBranchOwners(ctx context.Context, branchIDs []uint64) ([]uint64, error) {
	return r.branchRepository.FindOwnerIDs(ctx, r.storage, branchIDs)
}

func (r *OrganizationRepository) Search(ctx context.Context, query string) ([]entities.Organization, error) {
	return r.list(ctx, r.storage, searchOrganizationsQuery(query))
}

// -----------------------------------------------------------
// WRITE
// -----------------------------------------------------------

// Save - insert-or-replace организации вместе с полным набором филиалов
// в одной транзакции. Возвращает перечитанную запись.
func (r *OrganizationRepository) Save(ctx context.Context, organization entities.Organization) (*entities.Organization, error) {
	var saved *entities.Organization

	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		query, args, err := organizationUpsertQuery(organization).ToSql()
		if err != nil {
			return fmt.Errorf("ошибка построения запроса организации: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return mapPostgresError(err)
		}

		if err := r.branchRepository.ReplaceForOrganization(ctx, tx, organization.ID, organization.Branches); err != nil {
			return err
		}

		saved, err = r.findOne(ctx, tx, organization.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Организация сохранена",
		zap.Uint64("id", saved.ID),
		zap.Int("branches", len(saved.Branches)),
	)
	return saved, nil
}

// DeleteByID идемпотентен: отсутствие записи не ошибка. Филиалы удаляет ON DELETE CASCADE.
func (r *OrganizationRepository) DeleteByID(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return mapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("Удаление: организация не найдена", zap.Uint64("id", id))
	}
	return nil
}

func branchesOrEmpty(branches []entities.Branch) []entities.Branch {
	if branches == nil {
		return []entities.Branch{}
	}
	return branches
}
