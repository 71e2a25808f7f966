package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mnogodumalon/kurs96/core/catalog"
	"github.com/mnogodumalon/kurs96/core/record"
)

type catalogApi struct {
	svc *catalog.Service
}

// registerCatalogAPI mounts the five collections. Every collection gets the
// same surface: GET list (with ?search=), POST create, PUT /:id full-field
// replace, DELETE /:id.
func registerCatalogAPI(g *echo.Group, svc *catalog.Service) {
	api := catalogApi{svc: svc}

	lg := g.Group("/lecturers")
	lg.GET("", api.queryLecturers)
	lg.POST("", api.createLecturer)
	lg.PUT("/:id", api.updateLecturer)
	lg.DELETE("/:id", api.deleteLecturer)

	pg := g.Group("/participants")
	pg.GET("", api.queryParticipants)
	pg.POST("", api.createParticipant)
	pg.PUT("/:id", api.updateParticipant)
	pg.DELETE("/:id", api.deleteParticipant)

	rg := g.Group("/rooms")
	rg.GET("", api.queryRooms)
	rg.POST("", api.createRoom)
	rg.PUT("/:id", api.updateRoom)
	rg.DELETE("/:id", api.deleteRoom)

	cg := g.Group("/courses")
	cg.GET("", api.queryCourses)
	cg.POST("", api.createCourse)
	cg.PUT("/:id", api.updateCourse)
	cg.DELETE("/:id", api.deleteCourse)

	eg := g.Group("/enrollments")
	eg.GET("", api.queryEnrollments)
	eg.POST("", api.createEnrollment)
	eg.PUT("/:id", api.updateEnrollment)
	eg.DELETE("/:id", api.deleteEnrollment)
}

// Lecturers

func (api *catalogApi) queryLecturers(ctx echo.Context) error {
	lecturers, err := api.svc.QueryLecturers(reqCtx(ctx), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying lecturers")
	}
	return ctx.JSON(http.StatusOK, lecturers)
}

func (api *catalogApi) createLecturer(ctx echo.Context) error {
	var data catalog.NewLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecturer")
	}
	lecturer, err := api.svc.CreateLecturer(reqCtx(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, lecturer)
}

func (api *catalogApi) updateLecturer(ctx echo.Context) error {
	var data catalog.NewLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecturer")
	}
	if err := api.svc.UpdateLecturer(reqCtx(ctx), ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) deleteLecturer(ctx echo.Context) error {
	return deleted(ctx, api.svc.DeleteLecturer(reqCtx(ctx), ctx.Param("id")))
}

// Participants

func (api *catalogApi) queryParticipants(ctx echo.Context) error {
	participants, err := api.svc.QueryParticipants(reqCtx(ctx), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying participants")
	}
	return ctx.JSON(http.StatusOK, participants)
}

func (api *catalogApi) createParticipant(ctx echo.Context) error {
	var data catalog.NewParticipant
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewParticipant")
	}
	participant, err := api.svc.CreateParticipant(reqCtx(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, participant)
}

func (api *catalogApi) updateParticipant(ctx echo.Context) error {
	var data catalog.NewParticipant
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewParticipant")
	}
	if err := api.svc.UpdateParticipant(reqCtx(ctx), ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) deleteParticipant(ctx echo.Context) error {
	return deleted(ctx, api.svc.DeleteParticipant(reqCtx(ctx), ctx.Param("id")))
}

// Rooms

func (api *catalogApi) queryRooms(ctx echo.Context) error {
	rooms, err := api.svc.QueryRooms(reqCtx(ctx), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying rooms")
	}
	return ctx.JSON(http.StatusOK, rooms)
}

func (api *catalogApi) createRoom(ctx echo.Context) error {
	var data catalog.NewRoom
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoom")
	}
	room, err := api.svc.CreateRoom(reqCtx(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, room)
}

func (api *catalogApi) updateRoom(ctx echo.Context) error {
	var data catalog.NewRoom
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoom")
	}
	if err := api.svc.UpdateRoom(reqCtx(ctx), ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) deleteRoom(ctx echo.Context) error {
	return deleted(ctx, api.svc.DeleteRoom(reqCtx(ctx), ctx.Param("id")))
}

// Courses

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.QueryCourses(reqCtx(ctx), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) createCourse(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	course, err := api.svc.CreateCourse(reqCtx(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *catalogApi) updateCourse(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := api.svc.UpdateCourse(reqCtx(ctx), ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) deleteCourse(ctx echo.Context) error {
	return deleted(ctx, api.svc.DeleteCourse(reqCtx(ctx), ctx.Param("id")))
}

// Enrollments

func (api *catalogApi) queryEnrollments(ctx echo.Context) error {
	enrollments, err := api.svc.QueryEnrollments(reqCtx(ctx), ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *catalogApi) createEnrollment(ctx echo.Context) error {
	var data catalog.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	enrollment, err := api.svc.CreateEnrollment(reqCtx(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, enrollment)
}

func (api *catalogApi) updateEnrollment(ctx echo.Context) error {
	var data catalog.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := api.svc.UpdateEnrollment(reqCtx(ctx), ctx.Param("id"), data); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) deleteEnrollment(ctx echo.Context) error {
	return deleted(ctx, api.svc.DeleteEnrollment(reqCtx(ctx), ctx.Param("id")))
}

// deleted maps a delete outcome onto 204. A record that is already gone is
// treated as deleted, not as a failure.
func deleted(ctx echo.Context, err error) error {
	if err != nil && errors.Cause(err) != record.ErrNotFound {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func reqCtx(ctx echo.Context) context.Context {
	return ctx.Request().Context()
}
