package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"org-registry/internal/entities"
	"org-registry/pkg/api"
	"org-registry/pkg/utils"
	"org-registry/pkg/validation"
)

const (
	organizationsSheet = "Организации"
	branchesSheet      = "Филиалы"
)

var organizationHeaders = []interface{}{
	"ID", "Полное наименование", "Краткое наименование", "ИНН", "ОГРН",
	"Почтовый адрес", "Юридический адрес",
	"Фамилия руководителя", "Имя руководителя", "Отчество руководителя", "Дата рождения руководителя",
}

var branchHeaders = []interface{}{
	"ID", "ID организации", "Наименование", "Почтовый адрес",
	"Фамилия руководителя", "Имя руководителя", "Отчество руководителя", "Дата рождения руководителя",
}

func cellString(s null.String) string {
	return s.String
}

func cellDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(validation.DateLayout)
}

func organizationRow(o entities.Organization) []interface{} {
	return []interface{}{
		o.ID, cellString(o.FullName), cellString(o.ShortName), cellString(o.INN), cellString(o.OGRN),
		cellString(o.PostalAddress), cellString(o.LegalAddress),
		cellString(o.DirectorLastName), cellString(o.DirectorFirstName), cellString(o.DirectorMiddleName),
		cellDate(o.DirectorBirthDate),
	}
}

func branchRow(b entities.Branch) []interface{} {
	return []interface{}{
		b.ID, b.OrganizationID, cellString(b.Name), cellString(b.PostalAddress),
		cellString(b.DirectorLastName), cellString(b.DirectorFirstName), cellString(b.DirectorMiddleName),
		cellDate(b.DirectorBirthDate),
	}
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, style); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", lastCol, 25)
}

// BuildOrganizationsWorkbook - книга из двух листов: организации и их филиалы.
func BuildOrganizationsWorkbook(organizations []entities.Organization) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", organizationsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(branchesSheet); err != nil {
		return nil, err
	}

	orgRows := make([][]interface{}, 0, len(organizations))
	branchRows := make([][]interface{}, 0)
	for _, o := range organizations {
		orgRows = append(orgRows, organizationRow(o))
		for _, b := range o.Branches {
			branchRows = append(branchRows, branchRow(b))
		}
	}

	if err := writeSheet(f, organizationsSheet, organizationHeaders, orgRows); err != nil {
		return nil, fmt.Errorf("ошибка заполнения листа организаций: %w", err)
	}
	if err := writeSheet(f, branchesSheet, branchHeaders, branchRows); err != nil {
		return nil, fmt.Errorf("ошибка заполнения листа филиалов: %w", err)
	}
	return f, nil
}

func (c *OrganizationController) ExportOrganizations(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.requestTimeout)
	defer cancel()

	organizations, err := c.organizationService.GetAllOrganizations(reqCtx)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}

	f, err := BuildOrganizationsWorkbook(organizations)
	if err != nil {
		return api.ErrorResponse(ctx, err, c.logger)
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Warn("Не удалось закрыть xlsx", zap.Error(err))
		}
	}()

	fileName := fmt.Sprintf("organizations_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
