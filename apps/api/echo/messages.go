package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/placement/core"
	"github.com/trezcool/placement/core/directory"
)

type messageApi struct {
	svc      *directory.Service
	validate *validator.Validate
}

func registerMessageAPI(g *echo.Group, svc *directory.Service, validate *validator.Validate) {
	api := messageApi{svc: svc, validate: validate}
	g.POST("/messages", api.send, adminMiddleware(svc))
}

func (api *messageApi) send(ctx echo.Context) error {
	var data MessageRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MessageRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	dispatch, err := api.svc.MessageStudents(ctx.Request().Context(), data.IDs, data.Message, data.Link)
	if err != nil {
		return errors.Wrap(err, "messaging students")
	}
	return ctx.JSON(http.StatusOK, Response{
		Notice: newNotice("Messages Sent", fmt.Sprintf("Message sent to %d student(s).", dispatch.Requested)),
		Data:   dispatch,
	})
}

type MessageRequest struct {
	IDs     []string `json:"ids" validate:"min=1"`
	Message string   `json:"message" validate:"notblank"`
	Link    string   `json:"link" validate:"omitempty,url"`
}

func (mr *MessageRequest) Validate(validate *validator.Validate) error {
	mr.Message = core.CleanString(mr.Message)
	mr.Link = core.CleanString(mr.Link)
	return validate.Struct(mr)
}
