package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/placement/core/directory"
)

var contextStudentKey = "student"

// adminMiddleware only lets the request through when the admin is the current session.
func adminMiddleware(svc *directory.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			acc, ok := svc.Current()
			if !ok {
				return errUnauthorized
			}
			if _, isAdmin := acc.(directory.Admin); isAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// studentMiddleware loads the Student identified by the `id` path param into the context.
func studentMiddleware(svc *directory.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			s, err := svc.Student(ctx.Param("id"))
			if err != nil {
				if errors.Is(err, directory.ErrNotFound) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding student by ID")
			}
			ctx.Set(contextStudentKey, s)
			return next(ctx)
		}
	}
}

func getContextStudent(ctx echo.Context) (directory.Student, error) {
	s, ok := ctx.Get(contextStudentKey).(directory.Student)
	if !ok {
		return directory.Student{}, errors.New("student object not found in echo.Context")
	}
	return s, nil
}
