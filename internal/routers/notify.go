package routers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"stockcast-api/internal/ctx"
	"stockcast-api/internal/handlers/notify"
	"stockcast-api/internal/shared"
)

type NotifyRouter struct {
	nh *notify.Handler
}

func NewNotifyRouter(nh *notify.Handler) *NotifyRouter {
	return &NotifyRouter{nh: nh}
}

func RegisterNotifyRoutes(e *echo.Group, cfg notify.Config, log *zap.SugaredLogger) {
	nr := NewNotifyRouter(notify.NewHandler(cfg, log))
	e.POST("/send-email", nr.SendEmail)
}

// SendEmail relays a notification email composed by the dashboard.
func (nr *NotifyRouter) SendEmail(cc echo.Context) error {
	c := cc.(*ctx.Context)

	body, err := readRequestBody(c)
	if err != nil {
		return respondError(c, shared.ErrInvalidRequest)
	}

	var req shared.SendEmailRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.LogValues.AddError(err)
		return respondError(c, shared.ErrInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return respondError(c, emailValidationError(err))
	}

	res, err := nr.nh.Send(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

// emailValidationError maps validator failures onto the wire errors the
// dashboard knows. Required-field failures win over format failures.
func emailValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return shared.ErrInvalidRequest
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return shared.ErrMissingEmailFields
		}
	}
	for _, fe := range verrs {
		if fe.Tag() == "email" {
			return shared.ErrInvalidRecipient
		}
	}
	return shared.ErrMissingEmailFields
}
