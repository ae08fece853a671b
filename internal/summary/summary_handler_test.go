package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	timelogerrors "go-timeclock/internal/timelog/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	totalHoursFn func(ctx context.Context, badge string) (TotalHoursResponse, error)
	resetHoursFn func(ctx context.Context, badge string) (ResetHoursResponse, error)
}

func (f *fakeService) TotalHours(ctx context.Context, badge string) (TotalHoursResponse, error) {
	return f.totalHoursFn(ctx, badge)
}
func (f *fakeService) ResetHours(ctx context.Context, badge string) (ResetHoursResponse, error) {
	return f.resetHoursFn(ctx, badge)
}

func perform(t *testing.T, handler gin.HandlerFunc, method, target string, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Params = params
	handler(c)
	return w
}

func TestHandler_TotalHours(t *testing.T) {
	svc := &fakeService{
		totalHoursFn: func(ctx context.Context, badge string) (TotalHoursResponse, error) {
			assert.Equal(t, "101", badge)
			return TotalHoursResponse{BadgeNumber: "101", TotalHours: "12.75"}, nil
		},
	}

	w := perform(t, NewHandler(svc).TotalHours, http.MethodGet, "/summary/101/hours",
		gin.Param{Key: "badge", Value: "101"})

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Ok   bool               `json:"ok"`
		Data TotalHoursResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "12.75", envelope.Data.TotalHours)
}

func TestHandler_TotalHours_UnknownBadge(t *testing.T) {
	svc := &fakeService{
		totalHoursFn: func(ctx context.Context, badge string) (TotalHoursResponse, error) {
			return TotalHoursResponse{}, timelogerrors.ErrEmployeeNotFound
		},
	}

	w := perform(t, NewHandler(svc).TotalHours, http.MethodGet, "/summary/999/hours",
		gin.Param{Key: "badge", Value: "999"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ResetHours(t *testing.T) {
	svc := &fakeService{
		resetHoursFn: func(ctx context.Context, badge string) (ResetHoursResponse, error) {
			return ResetHoursResponse{BadgeNumber: "101", EntriesReset: 3}, nil
		},
	}

	w := perform(t, NewHandler(svc).ResetHours, http.MethodPost, "/summary/101/reset",
		gin.Param{Key: "badge", Value: "101"})

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data ResetHoursResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(3), envelope.Data.EntriesReset)
}
