package hrapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
)

// setupMockBackend 起一个假的 HR 后端
func setupMockBackend(t *testing.T, h http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New(Options{BaseURL: srv.URL + "/", Token: "svc-token"}, srv.Client(), zap.NewNop())
	return srv, c
}

func writeValue(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"value": v})
}

func TestClient_ListUsersUnwrapsValue(t *testing.T) {
	_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Users", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("pageNumber"))
		assert.Equal(t, "500", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "d1", r.URL.Query().Get("departmentId"))
		assert.Empty(t, r.URL.Query().Get("teamId"))
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		writeValue(w, []domain.User{{
			ID: "u1", FirstName: "Amal", LastName: "Haddad", Email: "amal@rwafi.io",
			Roles:       []string{"Manager"},
			Departments: []domain.Ref{{ID: "d1", Name: "Engineering"}},
		}})
	})

	users, err := c.ListUsers(context.Background(), domain.UserQuery{Page: 1, PageSize: 500, DepartmentID: "d1"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Amal Haddad", users[0].FullName())
	assert.True(t, users[0].InDepartment("d1"))
}

func TestClient_ForwardsCallerToken(t *testing.T) {
	_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer caller", r.Header.Get("Authorization"))
		writeValue(w, map[string]any{"id": "r1", "name": "Manager", "status": "active"})
	})

	role, err := c.GetRole(WithToken(context.Background(), "caller"), "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleActive, role.Status)
}

func TestClient_RoleMembersAcceptBothIDShapes(t *testing.T) {
	_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Roles/r1/users", r.URL.Path)
		_, _ = w.Write([]byte(`{"value":[{"userId":"u1"},{"id":"u2"}]}`))
	})

	rows, err := c.GetRoleMembers(context.Background(), "r1", 1, 1000)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "u1", rows[0].UserID())
	assert.Equal(t, "u2", rows[1].UserID())
}

func TestClient_NullValueIsEmpty(t *testing.T) {
	_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":null}`))
	})

	roles, err := c.ListRoles(context.Background(), domain.RoleQuery{Status: domain.RoleInactive})
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestClient_ErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"errorMessage wins", http.StatusNotFound, `{"errorMessage":"role not found","message":"x"}`, "role not found"},
		{"message fallback", http.StatusBadRequest, `{"message":"bad input"}`, "bad input"},
		{"raw body is not a message", http.StatusInternalServerError, "upstream exploded", ""},
		{"problem details", http.StatusBadRequest, `{"title":"One or more validation errors occurred.","status":400}`, ""},
		{"empty body", http.StatusConflict, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/Roles/r1/users/u1", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := c.AssignUser(context.Background(), "r1", "u1")
			require.Error(t, err)
			var be *Error
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.status, be.Status)
			assert.Equal(t, tt.want, ServerMessage(err))
		})
	}
}

func TestClient_StatusHelpers(t *testing.T) {
	_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := c.ListRoles(context.Background(), domain.RoleQuery{})
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
	assert.Empty(t, ServerMessage(context.Canceled))
}

func TestClient_RetriesGetOnNetworkError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// 第一次直接断开连接
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
				}
			}
			return
		}
		writeValue(w, []domain.Department{{ID: "d1", Name: "Engineering"}})
	}))
	t.Cleanup(srv.Close)

	c := New(Options{BaseURL: srv.URL, Retries: 2}, srv.Client(), zap.NewNop())
	c.backoff = time.Millisecond

	deps, err := c.ListDepartments(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Len(t, deps, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DoesNotRetryMutations(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
			}
		}
	}))
	t.Cleanup(srv.Close)

	c := New(Options{BaseURL: srv.URL, Retries: 3}, srv.Client(), zap.NewNop())
	c.backoff = time.Millisecond

	err := c.RemoveUser(context.Background(), "r1", "u1")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_SendsRolePayload(t *testing.T) {
	_, c := setupMockBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in domain.RoleInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Auditor", in.Name)
		assert.Equal(t, []string{"p1", "p2"}, in.PermissionIDs)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateRole(context.Background(), "r9", domain.RoleInput{Name: "Auditor", PermissionIDs: []string{"p1", "p2"}})
	require.NoError(t, err)
}

func TestClient_EmptyIDs(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:1"}, nil, nil)
	_, err := c.GetRole(context.Background(), "")
	assert.ErrorIs(t, err, errEmptyID)
	_, err = c.ListTeams(context.Background(), "")
	assert.ErrorIs(t, err, errEmptyID)
}

func TestNewError_KeepsBodyForLogs(t *testing.T) {
	e := newError(http.StatusBadGateway, []byte("  <html>bad gateway</html>\n"))
	assert.Empty(t, e.Message)
	assert.Equal(t, "<html>bad gateway</html>", e.Body)
	assert.Contains(t, e.Error(), "bad gateway")

	long := strings.Repeat("دور", 200)
	e = newError(http.StatusInternalServerError, []byte(long))
	assert.Equal(t, maxBodyRunes, utf8.RuneCountInString(e.Body))
	assert.True(t, utf8.ValidString(e.Body))
}
