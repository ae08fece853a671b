package timelog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	timelogerrors "go-timeclock/internal/timelog/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn    func(ctx context.Context, badge string) (TimeLogResponse, error)
	clockOutFn   func(ctx context.Context, badge string) (TimeLogResponse, error)
	getByBadgeFn func(ctx context.Context, badge string) ([]TimeLogResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, badge string) (TimeLogResponse, error) {
	return f.clockInFn(ctx, badge)
}
func (f *fakeService) ClockOut(ctx context.Context, badge string) (TimeLogResponse, error) {
	return f.clockOutFn(ctx, badge)
}
func (f *fakeService) GetByBadge(ctx context.Context, badge string) ([]TimeLogResponse, error) {
	return f.getByBadgeFn(ctx, badge)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target, body string, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	return w
}

func TestHandler_ClockIn(t *testing.T) {
	svc := &fakeService{
		clockInFn: func(ctx context.Context, badge string) (TimeLogResponse, error) {
			assert.Equal(t, "101", badge)
			return TimeLogResponse{ID: uuid.NewString(), BadgeNumber: "101", ClockIn: "2025-03-10T09:00:00+07:00"}, nil
		},
	}

	w := performJSON(t, NewHandler(svc).ClockIn, http.MethodPost, "/timelogs/clock-in",
		`{"badge_number":"101"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Ok   bool            `json:"ok"`
		Data TimeLogResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "101", envelope.Data.BadgeNumber)
	assert.Nil(t, envelope.Data.ClockOut)
}

func TestHandler_ClockIn_MissingBadge(t *testing.T) {
	svc := &fakeService{
		clockInFn: func(ctx context.Context, badge string) (TimeLogResponse, error) {
			t.Fatal("service must not be called on a binding failure")
			return TimeLogResponse{}, nil
		},
	}

	w := performJSON(t, NewHandler(svc).ClockIn, http.MethodPost, "/timelogs/clock-in", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ClockIn_AlreadyOpen(t *testing.T) {
	svc := &fakeService{
		clockInFn: func(ctx context.Context, badge string) (TimeLogResponse, error) {
			return TimeLogResponse{}, timelogerrors.ErrAlreadyClockedIn
		},
	}

	w := performJSON(t, NewHandler(svc).ClockIn, http.MethodPost, "/timelogs/clock-in",
		`{"badge_number":"101"}`)

	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_STATE", envelope.Error.Code)
}

func TestHandler_ClockOut(t *testing.T) {
	hours := "8.50"
	svc := &fakeService{
		clockOutFn: func(ctx context.Context, badge string) (TimeLogResponse, error) {
			return TimeLogResponse{ID: uuid.NewString(), BadgeNumber: "101", HoursWorked: &hours}, nil
		},
	}

	w := performJSON(t, NewHandler(svc).ClockOut, http.MethodPost, "/timelogs/clock-out",
		`{"badge_number":"101"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data TimeLogResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data.HoursWorked)
	assert.Equal(t, "8.50", *envelope.Data.HoursWorked)
}

func TestHandler_ClockOut_NothingOpen(t *testing.T) {
	svc := &fakeService{
		clockOutFn: func(ctx context.Context, badge string) (TimeLogResponse, error) {
			return TimeLogResponse{}, timelogerrors.ErrNoOpenEntry
		},
	}

	w := performJSON(t, NewHandler(svc).ClockOut, http.MethodPost, "/timelogs/clock-out",
		`{"badge_number":"101"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_GetByBadge(t *testing.T) {
	svc := &fakeService{
		getByBadgeFn: func(ctx context.Context, badge string) ([]TimeLogResponse, error) {
			assert.Equal(t, "101", badge)
			return []TimeLogResponse{{BadgeNumber: "101"}}, nil
		},
	}

	w := performJSON(t, NewHandler(svc).GetByBadge, http.MethodGet, "/timelogs/101", "",
		gin.Param{Key: "badge", Value: "101"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetByBadge_Unknown(t *testing.T) {
	svc := &fakeService{
		getByBadgeFn: func(ctx context.Context, badge string) ([]TimeLogResponse, error) {
			return nil, timelogerrors.ErrEmployeeNotFound
		},
	}

	w := performJSON(t, NewHandler(svc).GetByBadge, http.MethodGet, "/timelogs/999", "",
		gin.Param{Key: "badge", Value: "999"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
