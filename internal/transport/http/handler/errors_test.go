package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/service"
	httpez "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/ez"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))

	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"role not found", fmt.Errorf("load role: %w", service.ErrRoleNotFound), 404, "role not found"},
		{"backend 404", &hrapi.Error{Status: 404}, 404, "role not found"},
		{"bad status", domain.ErrInvalidStatus, 400, domain.ErrInvalidStatus.Error()},
		{"pending", &service.MutationError{Action: domain.ActionAssign, Message: "busy", Err: service.ErrMutationPending}, 409, "busy"},
		{"mutation failed", &service.MutationError{Action: domain.ActionRemove, Message: "nope", Err: errors.New("x")}, 502, "nope"},
		{"backend error", fmt.Errorf("load users: %w", &hrapi.Error{Status: 500, Message: "db down"}), 502, "db down"},
		{"backend error no message", &hrapi.Error{Status: 503}, 502, "hr backend error"},
		{"timeout", fmt.Errorf("GET /api/Users: %w", context.DeadlineExceeded), 504, "backend timeout"},
		{"other", errors.New("boom"), 500, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ae *httpez.AErr
			require.ErrorAs(t, mapErr(tc.err), &ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.msg, ae.Error())
		})
	}
}

func TestMapErr_MutationCarriesNotification(t *testing.T) {
	var ae *httpez.AErr
	require.ErrorAs(t, mapErr(&service.MutationError{Message: "nope", Err: errors.New("x")}), &ae)
	data, ok := ae.Data.(mutationFailed)
	require.True(t, ok)
	assert.Equal(t, service.Notification{Level: "error", Message: "nope"}, data.Notification)
}
