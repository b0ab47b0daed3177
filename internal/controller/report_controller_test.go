package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type mockReportProvider struct {
	mock.Mock
}

func (m *mockReportProvider) CourseReport(ctx context.Context, filter model.ReportFilter, scope model.Scope, page, perPage int) (*model.ReportPage, error) {
	args := m.Called(ctx, filter, scope, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportPage), args.Error(1)
}

func (m *mockReportProvider) LadderSummary(ctx context.Context) (*model.SummaryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryReport), args.Error(1)
}

func (m *mockReportProvider) PathSummary(ctx context.Context) (*model.SummaryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SummaryReport), args.Error(1)
}

func reportTestRouter(provider ReportProvider, claims *util.Claims) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("user", claims)
		}
		c.Next()
	})

	rc := NewReportController(provider)
	router.GET("/reports/courses", rc.CourseReport)
	router.GET("/reports/ladders", rc.LadderSummary)
	return router
}

func TestCourseReportPassesScopeFromClaims(t *testing.T) {
	provider := new(mockReportProvider)
	provider.On("CourseReport",
		mock.Anything,
		model.ReportFilter{Campus: "South"},
		model.Scope{CanViewAllCampuses: false, OwnCampus: "North"},
		2, 25,
	).Return(&model.ReportPage{Page: 2, PerPage: 25}, nil)

	claims := &util.Claims{UserID: 1, Role: model.Admin, Campus: "North"}
	router := reportTestRouter(provider, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/courses?campus=South&page=2&perPage=25", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	provider.AssertExpectations(t)
}

func TestCourseReportSuperadminGetsAllCampusScope(t *testing.T) {
	provider := new(mockReportProvider)
	provider.On("CourseReport",
		mock.Anything,
		mock.Anything,
		model.Scope{CanViewAllCampuses: true, OwnCampus: "North"},
		1, 0,
	).Return(&model.ReportPage{}, nil)

	claims := &util.Claims{UserID: 1, Role: model.SuperAdmin, Campus: "North"}
	router := reportTestRouter(provider, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/courses", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	provider.AssertExpectations(t)
}

func TestCourseReportWithoutClaims(t *testing.T) {
	router := reportTestRouter(new(mockReportProvider), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/courses", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLadderSummaryResponseEnvelope(t *testing.T) {
	provider := new(mockReportProvider)
	provider.On("LadderSummary", mock.Anything).Return(&model.SummaryReport{
		Groups:           []model.GroupSummary{{Title: "Member", FullyCompletedUsers: 3}},
		TotalUniqueUsers: 3,
	}, nil)

	claims := &util.Claims{UserID: 1, Role: model.Admin, Campus: "North"}
	router := reportTestRouter(provider, claims)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/ladders", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int                 `json:"code"`
		Data model.SummaryReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 3, resp.Data.TotalUniqueUsers)
	require.Len(t, resp.Data.Groups, 1)
	assert.Equal(t, "Member", resp.Data.Groups[0].Title)
}
