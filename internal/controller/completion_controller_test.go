package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/completions?"+rawQuery, nil)
	return ctx
}

func TestParseLogQueryCursor(t *testing.T) {
	at := time.Date(2026, 2, 14, 17, 30, 0, 0, time.UTC)
	ctx := logQueryContext(t, "afterTime="+at.Format(time.RFC3339Nano)+"&afterId=row-9&limit=25")
	claims := &util.Claims{Role: model.SuperAdmin}

	q, err := parseLogQuery(ctx, claims)
	require.NoError(t, err)

	require.NotNil(t, q.AfterTime)
	assert.True(t, q.AfterTime.Equal(at))
	assert.Equal(t, "row-9", q.AfterID)
	assert.Equal(t, 25, q.Limit)
}

func TestParseLogQueryCursorNeedsBothHalves(t *testing.T) {
	ctx := logQueryContext(t, "afterId=row-9")
	claims := &util.Claims{Role: model.SuperAdmin}

	q, err := parseLogQuery(ctx, claims)
	require.NoError(t, err)

	assert.Nil(t, q.AfterTime)
	assert.Empty(t, q.AfterID)
}

func TestParseLogQueryForcesOwnCampus(t *testing.T) {
	ctx := logQueryContext(t, "campus=South")
	claims := &util.Claims{Role: model.Admin, Campus: "North"}

	q, err := parseLogQuery(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "North", q.Campus)

	ctx = logQueryContext(t, "campus=South")
	claims = &util.Claims{Role: model.Admin, Campus: "North", CanViewAllCampuses: true}

	q, err = parseLogQuery(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "South", q.Campus)
}

func TestParseLogQueryDateRangeCoversWholeDays(t *testing.T) {
	ctx := logQueryContext(t, "from=2026-02-01&to=2026-02-28")
	claims := &util.Claims{Role: model.SuperAdmin}

	q, err := parseLogQuery(ctx, claims)
	require.NoError(t, err)

	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local), *q.From)
	// The upper bound reaches the last instant of the "to" day.
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local), *q.To)
}

func TestParseLogQueryRejectsBadDates(t *testing.T) {
	ctx := logQueryContext(t, "from=02/01/2026")
	claims := &util.Claims{Role: model.SuperAdmin}

	_, err := parseLogQuery(ctx, claims)
	assert.Error(t, err)
}
