package routes

import (
	"github.com/labstack/echo/v4"

	"org-registry/internal/controllers"
)

func RunOrganizationRouter(api *echo.Group, organizationCtrl *controllers.OrganizationController) {
	api.GET("/organizations", organizationCtrl.GetOrganizations)
	api.GET("/organizations/search", organizationCtrl.SearchOrganizations)
	api.GET("/organizations/export", organizationCtrl.ExportOrganizations)
	api.GET("/organizations/:id", organizationCtrl.FindOrganization)
	api.POST("/organizations", organizationCtrl.CreateOrganization)
	api.PUT("/organizations/:id", organizationCtrl.UpdateOrganization)
	api.DELETE("/organizations/:id", organizationCtrl.DeleteOrganization)
}
