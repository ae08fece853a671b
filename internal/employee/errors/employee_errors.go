package employeeerrors

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
	ErrDuplicateBadge = apperror.New(
		apperror.CodeConflict,
		"Badge number is already assigned to another employee",
		http.StatusConflict,
	)
	ErrValidationFailed = apperror.New(
		apperror.CodeInvalidInput,
		"Employee record has invalid fields",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
