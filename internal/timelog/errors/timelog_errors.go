package timelogerrors

import (
	"go-timeclock/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"Employee already has an open time log",
		http.StatusConflict,
	)
	ErrNoOpenEntry = apperror.New(
		apperror.CodeInvalidState,
		"Employee has no open time log to close",
		http.StatusConflict,
	)
)
