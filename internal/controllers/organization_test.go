package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"org-registry/internal/entities"
	apperrors "org-registry/pkg/errors"
	"org-registry/pkg/validation"
)

type stubOrganizationService struct {
	orgs       map[uint64]entities.Organization
	lastQuery  *string
	lastUpdate *entities.Organization
	err        error
}

func (s *stubOrganizationService) GetAllOrganizations(context.Context) ([]entities.Organization, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entities.Organization, 0, len(s.orgs))
	for id := uint64(1); id <= 100; id++ {
		if o, ok := s.orgs[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrganizationService) GetOrganizationByID(_ context.Context, id uint64) (*entities.Organization, error) {
	o, ok := s.orgs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (s *stubOrganizationService) CreateOrganization(_ context.Context, o entities.Organization) (*entities.Organization, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.orgs[o.ID] = o
	return &o, nil
}

func (s *stubOrganizationService) UpdateOrganization(_ context.Context, id uint64, o entities.Organization) (*entities.Organization, error) {
	if _, ok := s.orgs[id]; !ok {
		return nil, apperrors.ErrNotFound
	}
	s.lastUpdate = &o
	o.ID = id
	s.orgs[id] = o
	return &o, nil
}

func (s *stubOrganizationService) DeleteOrganization(_ context.Context, id uint64) error {
	delete(s.orgs, id)
	return nil
}

func (s *stubOrganizationService) SearchOrganizations(_ context.Context, query string) ([]entities.Organization, error) {
	s.lastQuery = &query
	return s.GetAllOrganizations(context.Background())
}

func newControllerFixture() (*echo.Echo, *stubOrganizationService) {
	svc := &stubOrganizationService{orgs: map[uint64]entities.Organization{
		1: {
			ID:                1,
			FullName:          null.StringFrom("Acme Corp"),
			INN:               null.StringFrom("1234567890"),
			DirectorBirthDate: null.TimeFrom(time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC)),
			Branches: []entities.Branch{
				{ID: 10, OrganizationID: 1, Name: null.StringFrom("North")},
			},
		},
	}}

	v, err := validation.New()
	if err != nil {
		panic(err)
	}
	e := echo.New()
	e.Validator = v
	ctrl := NewOrganizationController(svc, time.Second, zap.NewNop())
	g := e.Group("/api")
	g.GET("/organizations", ctrl.GetOrganizations)
	g.GET("/organizations/search", ctrl.SearchOrganizations)
	g.GET("/organizations/export", ctrl.ExportOrganizations)
	g.GET("/organizations/:id", ctrl.FindOrganization)
	g.POST("/organizations", ctrl.CreateOrganization)
	g.PUT("/organizations/:id", ctrl.UpdateOrganization)
	g.DELETE("/organizations/:id", ctrl.DeleteOrganization)
	return e, svc
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestOrganizationController_Find(t *testing.T) {
	e, _ := newControllerFixture()

	t.Run("found", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/organizations/1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)["body"].(map[string]interface{})
		assert.Equal(t, "Acme Corp", body["full_name"])
		assert.Equal(t, "1980-05-17", body["director_birth_date"])
		assert.Nil(t, body["short_name"])
		assert.Len(t, body["branches"], 1)
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/organizations/2", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, decodeBody(t, rec)["status"])
	})

	t.Run("bad id", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/organizations/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrganizationController_List(t *testing.T) {
	e, svc := newControllerFixture()

	rec := doRequest(e, http.MethodGet, "/api/organizations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["body"], 1)

	svc.orgs = map[uint64]entities.Organization{}
	rec = doRequest(e, http.MethodGet, "/api/organizations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"body":[]`)
}

func TestOrganizationController_Search(t *testing.T) {
	e, svc := newControllerFixture()

	rec := doRequest(e, http.MethodGet, "/api/organizations/search?query=567", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastQuery)
	assert.Equal(t, "567", *svc.lastQuery)

	rec = doRequest(e, http.MethodGet, "/api/organizations/search", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", *svc.lastQuery)
}

func TestOrganizationController_Create(t *testing.T) {
	e, svc := newControllerFixture()

	t.Run("created", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/organizations",
			`{"id": 2, "short_name": "Ромашка", "director_birth_date": "1975-03-08", "branches": [{"id": 20, "name": "Юг"}]}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		saved := svc.orgs[2]
		assert.Equal(t, "Ромашка", saved.ShortName.String)
		assert.False(t, saved.FullName.Valid)
		require.Len(t, saved.Branches, 1)
		assert.Equal(t, uint64(20), saved.Branches[0].ID)
	})

	t.Run("missing id", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/organizations", `{"short_name": "Без ключа"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("branch without id", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/organizations", `{"id": 3, "branches": [{"name": "Без ключа"}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["message"], "required")
	})

	t.Run("bad date", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/organizations", `{"id": 3, "director_birth_date": "08.03.1975"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/organizations", `{"id": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure is 500 without details", func(t *testing.T) {
		svc.err = errors.New("dial tcp: connection refused")
		defer func() { svc.err = nil }()

		rec := doRequest(e, http.MethodPost, "/api/organizations", `{"id": 4}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestOrganizationController_Update(t *testing.T) {
	e, svc := newControllerFixture()

	rec := doRequest(e, http.MethodPut, "/api/organizations/1", `{"full_name": "Acme Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotNil(t, svc.lastUpdate)
	assert.Equal(t, "Acme Renamed", svc.lastUpdate.FullName.String)
	assert.False(t, svc.lastUpdate.INN.Valid, "не переданное поле уходит в сервис как null")
	assert.Empty(t, svc.lastUpdate.Branches)

	rec = doRequest(e, http.MethodPut, "/api/organizations/99", `{"full_name": "Нет такой"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrganizationController_Delete(t *testing.T) {
	e, svc := newControllerFixture()

	rec := doRequest(e, http.MethodDelete, "/api/organizations/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, svc.orgs, uint64(1))

	rec = doRequest(e, http.MethodDelete, "/api/organizations/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOrganizationController_Export(t *testing.T) {
	e, _ := newControllerFixture()

	rec := doRequest(e, http.MethodGet, "/api/organizations/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "organizations_")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	orgRows, err := f.GetRows(organizationsSheet)
	require.NoError(t, err)
	require.Len(t, orgRows, 2)
	assert.Equal(t, "Полное наименование", orgRows[0][1])
	assert.Equal(t, "Acme Corp", orgRows[1][1])
	assert.Equal(t, "1980-05-17", orgRows[1][10])

	branchRows, err := f.GetRows(branchesSheet)
	require.NoError(t, err)
	require.Len(t, branchRows, 2)
	assert.Equal(t, "North", branchRows[1][2])
}
