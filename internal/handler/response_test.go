package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bookswap/internal/errors"
)

func TestFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		wantLogs int
	}{
		{"domain error", errors.ErrDuplicateRequest, http.StatusConflict, "DUPLICATE_REQUEST", 0},
		{"wrapped domain error", fmt.Errorf("request swap: %w", errors.ErrSwapNotFound), http.StatusNotFound, "SWAP_NOT_FOUND", 0},
		{"backend error", stderrors.New("redis set: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/swaps/1/accept", nil), httptest.NewRecorder())

			err := failure(c, zap.New(core), tt.err)

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.Code)
			assert.Equal(t, tt.code, httpErr.Message.(errors.ErrorResponse).Code)
			assert.Equal(t, tt.wantLogs, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		})
	}
}
