// Файл: internal/controllers/organization.go

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"org-registry/internal/dto"
	"org-registry/internal/services"
	"org-registry/pkg/api"
	apperrors "org-registry/pkg/errors"
	"org-registry/pkg/utils"
)

type OrganizationController struct {
	organizationService services.OrganizationServiceInterface
	requestTimeout      time.Duration
	logger              *zap.Logger
}

func NewOrganizationController(
	organizationService services.OrganizationServiceInterface,
	requestTimeout time.Duration,
	logger *zap.Logger,
) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
		requestTimeout:      requestTimeout,
		logger:              logger,
	}
}

func parseOrganizationID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("Некорректный ID организации")
	}
	return id, nil
}

// bindOrganization читает и валидирует тело запроса.
func (c *OrganizationController) bindOrganization(ctx echo.Context) (dto.OrganizationDTO, error) {
	var body dto.OrganizationDTO
	if err := ctx.Bind(&body); err != nil {
		return body, apperrors.NewBadRequestError("Неверный формат данных")
	}
	if err := ctx.Validate(&body); err != nil {
		return body, err
	}
	return body, nil
}

func (c *OrganizationController) GetOrganizations(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	organizations, err := c.organizationService.GetAllOrganizations(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessList(ctx, "Список организаций успешно получен", services.OrganizationsToDTO(organizations))
}

func (c *OrganizationController) SearchOrganizations(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	// пустой query допустим: совпадет почти все
	query := ctx.QueryParam("query")

	organizations, err := c.organizationService.SearchOrganizations(reqCtx, query)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessList(ctx, "Поиск организаций выполнен", services.OrganizationsToDTO(organizations))
}

func (c *OrganizationController) FindOrganization(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	id, err := parseOrganizationID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	organization, err := c.organizationService.GetOrganizationByID(reqCtx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.logger.Error("Ошибка при поиске организации", zap.Error(err), zap.Uint64("id", id))
		}
		return api.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Организация успешно найдена", services.OrganizationToDTO(*organization))
}

func (c *OrganizationController) CreateOrganization(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	body, err := c.bindOrganization(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	if body.ID == 0 {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("Не указан ID организации"), c.logger)
	}

	organization, err := services.OrganizationFromDTO(body)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.organizationService.CreateOrganization(reqCtx, organization)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessOne(ctx, http.StatusCreated, "Организация успешно создана", services.OrganizationToDTO(*created))
}

func (c *OrganizationController) UpdateOrganization(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	id, err := parseOrganizationID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	body, err := c.bindOrganization(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	organization, err := services.OrganizationFromDTO(body)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.organizationService.UpdateOrganization(reqCtx, id, organization)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Организация успешно обновлена", services.OrganizationToDTO(*updated))
}

func (c *OrganizationController) DeleteOrganization(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	id, err := parseOrganizationID(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.organizationService.DeleteOrganization(reqCtx, id); err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
