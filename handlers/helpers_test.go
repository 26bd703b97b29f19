package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/matchday-system/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing match", services.ErrMatchNotFound, http.StatusNotFound},
		{"duplicate roster entry", services.ErrAlreadyOnRoster, http.StatusConflict},
		{"blank team name", services.ErrTeamNameRequired, http.StatusBadRequest},
		{"voting before full time", services.ErrMatchNotFinished, http.StatusBadRequest},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"foreign payment", services.ErrNotYourPayment, http.StatusForbidden},
		{"store down", services.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"badge store failure", services.ErrBadgeUploadFailed, http.StatusBadGateway},
		{"wrapped badge store failure", fmt.Errorf("%w: %w", services.ErrBadgeUploadFailed, errors.New("upstream timeout")), http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			mapServiceErrorToHTTP(rec, req, c.err)

			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}
