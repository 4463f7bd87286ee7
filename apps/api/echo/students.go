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

var errNothingToUpdate = errors.New("nothing to update")

type studentApi struct {
	svc      *directory.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *directory.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	sg := g.Group("/students", adminMiddleware(svc))
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id", studentMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/approve", api.approve)
	dg.POST("/reject", api.reject)
	dg.POST("/placed", api.markAsPlaced)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(directory.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, Response{Data: []directory.Student{}})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.svc.Query(*filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []directory.Student{}
	}
	return ctx.JSON(http.StatusOK, Response{Data: students})
}

func (api *studentApi) create(ctx echo.Context) error {
	var data AddStudentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddStudentRequest")
	}
	data.Clean()

	s, err := api.svc.AddStudent(data.StudentFields, data.Password)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, Response{
		Notice: newNotice("Student Added", fmt.Sprintf("%s has been added successfully.", s.Name)),
		Data:   s,
	})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, Response{Data: s})
}

func (api *studentApi) update(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}

	var data directory.StudentUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentUpdate")
	}
	if data.IsEmpty() {
		return core.NewValidationError(errNothingToUpdate)
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.UpdateStudent(s.ID, data); err != nil {
		return errors.Wrap(err, "updating student")
	}
	if s, err = api.svc.Student(s.ID); err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, Response{
		Notice: newNotice("Student Updated", "Student information has been updated."),
		Data:   s,
	})
}

func (api *studentApi) destroy(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.RemoveStudent(s.ID); err != nil {
		return errors.Wrap(err, "removing student")
	}
	return ctx.JSON(http.StatusOK, Response{
		Notice: newNotice("Student Removed", "The student has been removed from the system."),
	})
}

func (api *studentApi) approve(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.ApproveStudent(s.ID); err != nil {
		return errors.Wrap(err, "approving student")
	}
	return api.respondWith(ctx, s.ID, newNotice("Student Approved", "The student has been approved and can now log in."))
}

func (api *studentApi) reject(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.RejectStudent(s.ID); err != nil {
		return errors.Wrap(err, "rejecting student")
	}
	return ctx.JSON(http.StatusOK, Response{
		Notice: newNotice("Student Rejected", "The student registration has been rejected."),
	})
}

func (api *studentApi) markAsPlaced(ctx echo.Context) error {
	s, err := getContextStudent(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.MarkAsPlaced(s.ID); err != nil {
		return errors.Wrap(err, "marking student as placed")
	}
	return api.respondWith(ctx, s.ID, newNotice("Student Marked as Placed", "The student has been marked as placed."))
}

// respondWith sends the fresh copy of the Student along with notice.
func (api *studentApi) respondWith(ctx echo.Context, id string, notice *Notice) error {
	s, err := api.svc.Student(id)
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, Response{Notice: notice, Data: s})
}

// AddStudentRequest is an admin-supplied record; unlike self-registration it may be incomplete.
type AddStudentRequest struct {
	directory.StudentFields
	Password string `json:"password"`
}

func (ar *AddStudentRequest) Clean() {
	ar.Name = core.CleanString(ar.Name)
	ar.Email = core.CleanString(ar.Email)
	ar.RegisterNumber = core.CleanString(ar.RegisterNumber)
	ar.RollNumber = core.CleanString(ar.RollNumber)
	ar.PhoneNumber = core.CleanString(ar.PhoneNumber)
}
