package routes

import (
	"net/http"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"org-registry/pkg/config"
)

func TestInitRouter_RegistersOrganizationRoutes(t *testing.T) {
	for name, client := range map[string]*redis.Client{
		"without cache": nil,
		"with cache":    redis.NewClient(&redis.Options{Addr: "localhost:0"}),
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			InitRouter(e, nil, client, &config.Config{}, zap.NewNop())

			registered := map[string]bool{}
			for _, r := range e.Routes() {
				registered[r.Method+" "+r.Path] = true
			}

			for _, want := range []string{
				http.MethodGet + " /api/organizations",
				http.MethodGet + " /api/organizations/search",
				http.MethodGet + " /api/organizations/export",
				http.MethodGet + " /api/organizations/:id",
				http.MethodPost + " /api/organizations",
				http.MethodPut + " /api/organizations/:id",
				http.MethodDelete + " /api/organizations/:id",
			} {
				assert.True(t, registered[want], want)
			}
		})
	}
}
