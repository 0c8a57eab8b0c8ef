package handler

import (
	"context"
	"errors"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/domain"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/hrapi"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/service"
	httpez "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/ez"
	resp "github.com/CultivBureau/RwafiWorkHole-sub004/internal/transport/http/response"
)

// mapErr 服务层错误 -> AErr
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var (
		me *service.MutationError
		he *hrapi.Error
	)
	switch {
	case errors.Is(err, service.ErrRoleNotFound), hrapi.IsNotFound(err):
		return httpez.NotFound("role not found")
	case errors.Is(err, domain.ErrInvalidStatus):
		return httpez.BadRequest(err.Error())
	case errors.As(err, &me):
		n := service.Notification{Level: "error", Message: me.Message}
		if service.IsPending(err) {
			return &httpez.AErr{Code: resp.CodeConflict, Msg: me.Message, Err: err, Data: mutationFailed{n}}
		}
		return &httpez.AErr{Code: resp.CodeBadGateway, Msg: me.Message, Err: err, Data: mutationFailed{n}}
	case errors.As(err, &he):
		msg := he.Message
		if msg == "" {
			msg = "hr backend error"
		}
		return httpez.BadGateway(msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return httpez.Timeout(err)
	}
	return httpez.Internal("internal error", err)
}

type mutationFailed struct {
	Notification service.Notification `json:"notification"`
}
