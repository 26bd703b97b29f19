package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/matchday-system/models"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		session    *models.Session
		roles      []string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "matching role passes through",
			session:    &models.Session{UserID: "u1", Role: models.RoleManager},
			roles:      []string{models.RoleManager},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "any of several roles passes",
			session:    &models.Session{UserID: "u1", Role: models.RolePlayer},
			roles:      []string{models.RoleManager, models.RolePlayer},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "wrong role is forbidden",
			session:    &models.Session{UserID: "u1", Role: models.RolePlayer},
			roles:      []string{models.RoleManager},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no session is unauthorized",
			session:    nil,
			roles:      []string{models.RoleManager},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/matches/m1/invitations", nil)
			if tt.session != nil {
				ctx := context.WithValue(req.Context(), sessionContextKey, *tt.session)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			Authorize(tt.roles...)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}

func TestSessionFromContext(t *testing.T) {
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Error("expected no session on a bare context")
	}

	want := models.Session{UserID: "u1", Role: models.RoleManager}
	ctx := context.WithValue(context.Background(), sessionContextKey, want)
	got, ok := SessionFromContext(ctx)
	if !ok {
		t.Fatal("expected a session")
	}
	if got.UserID != want.UserID || got.Role != want.Role {
		t.Errorf("session = %+v, want %+v", got, want)
	}
}
