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

type authApi struct {
	svc      *directory.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, svc *directory.Service, validate *validator.Validate) {
	api := authApi{svc: svc, validate: validate}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/session", api.session)
	ag.POST("/register", api.register)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	acc, err := api.svc.Login(ctx.Request().Context(), data.Email, data.Password, data.Role)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidCredentials) {
			return withNotice(err, "Login Failed", "Invalid credentials or your account is not approved yet.")
		}
		return withNotice(errors.Wrap(err, "logging in"), "Login Error", "An unexpected error occurred. Please try again.")
	}

	return ctx.JSON(http.StatusOK, Response{
		Notice: newNotice("Login Successful", fmt.Sprintf("Welcome back, %s!", acc.Ident().Name)),
		Data:   acc,
	})
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, Response{
		Notice: newNotice("Logged Out", "You've been successfully logged out."),
	})
}

func (api *authApi) session(ctx echo.Context) error {
	acc, ok := api.svc.Current()
	if !ok {
		return errUnauthorized
	}
	return ctx.JSON(http.StatusOK, Response{Data: acc})
}

func (api *authApi) register(ctx echo.Context) error {
	var data directory.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Register(ctx.Request().Context(), data.StudentFields, data.Password)
	if err != nil {
		if errors.Is(err, directory.ErrDuplicateEmail) {
			return withNotice(err, "Registration Failed", "Email already in use.")
		}
		return withNotice(errors.Wrap(err, "registering"), "Registration Error", "An unexpected error occurred. Please try again.")
	}

	return ctx.JSON(http.StatusCreated, Response{
		Notice: newNotice("Registration Successful", "Your account is pending approval from an administrator."),
		Data:   s,
	})
}

type LoginRequest struct {
	Email    string         `json:"email" validate:"required"`
	Password string         `json:"password" validate:"required"`
	Role     directory.Role `json:"role" validate:"required,role"`
}

// Validate trims the email but keeps its case: accounts are matched exactly.
func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email)
	return validate.Struct(lr)
}
