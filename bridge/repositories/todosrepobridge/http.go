package todosrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrazmi/todos/bridge/scaffolding/errs"
	"github.com/jrazmi/todos/bridge/scaffolding/mid"
	"github.com/jrazmi/todos/core/repositories/todosrepo"
	"github.com/jrazmi/todos/infrastructure/web"
	"github.com/jrazmi/todos/sdk/logger"
)

// Client facing messages.
const (
	MsgTextRequired   = "Text is required"
	MsgTodoNotFound   = "Todo not found"
	MsgInvalidRequest = "Invalid request body"
	MsgBodyTooLarge   = "Request body too large"
)

// Methods lists every method the todo collection accepts.
var Methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// Config holds configuration for the Todo bridge
type Config struct {
	Log        *logger.Logger
	Repository *todosrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers the todo collection at /tasks on group. Methods
// other than those in Methods are answered with 405.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)

	mw := append([]web.Middleware{mid.AllowMethods(Methods...)}, cfg.Middleware...)

	group.GET("/tasks", b.httpList, mw...)
	group.POST("/tasks", b.httpCreate, mw...)
	group.PUT("/tasks", b.httpToggle, mw...)
	group.DELETE("/tasks", b.httpDelete, mw...)
	group.ANY("/tasks", b.httpMethodNotAllowed, mw...)
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	records, err := b.todoRepository.List(ctx)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	return web.NewJSONResponse(MarshalListToBridge(records))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTodoInput
	if err := web.Decode(r, &input); err != nil {
		if errors.Is(err, web.ErrBodyTooLarge) {
			return errs.Wrapf(errs.PayloadTooLarge, err, MsgBodyTooLarge)
		}
		return errs.Wrapf(errs.InvalidArgument, err, MsgTextRequired)
	}

	record, err := b.todoRepository.Create(ctx, MarshalCreateToRepository(input))
	if err != nil {
		if errors.Is(err, todosrepo.ErrTextRequired) {
			return errs.Wrapf(errs.InvalidArgument, err, MsgTextRequired)
		}
		return errs.New(errs.InternalOnlyLog, err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(record), http.StatusCreated)
}

func (b *bridge) httpToggle(ctx context.Context, r *http.Request) web.Encoder {
	var input UpdateTodoInput
	if err := web.Decode(r, &input); err != nil {
		switch {
		case errors.Is(err, web.ErrBodyTooLarge):
			return errs.Wrapf(errs.PayloadTooLarge, err, MsgBodyTooLarge)
		case errors.Is(err, ErrUnknownID):
			return errs.Wrapf(errs.NotFound, err, MsgTodoNotFound)
		}
		return errs.Wrapf(errs.InvalidArgument, err, MsgInvalidRequest)
	}

	record, err := b.todoRepository.Toggle(ctx, MarshalUpdateToRepository(input))
	if err != nil {
		if errors.Is(err, todosrepo.ErrNotFound) {
			return errs.Wrapf(errs.NotFound, err, MsgTodoNotFound)
		}
		return errs.New(errs.InternalOnlyLog, err)
	}

	return web.NewJSONResponse(MarshalToBridge(record))
}

// httpDelete answers 204 with no body. An id that does not parse cannot name
// a todo and is reported as not found.
func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := strconv.Atoi(web.QueryParam(r, "id"))
	if err != nil {
		return errs.Wrapf(errs.NotFound, err, MsgTodoNotFound)
	}

	if err := b.todoRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, todosrepo.ErrNotFound) {
			return errs.Wrapf(errs.NotFound, err, MsgTodoNotFound)
		}
		return errs.New(errs.InternalOnlyLog, err)
	}

	return nil
}

// httpMethodNotAllowed is normally preempted by AllowMethods; it answers the
// same way in case the route is mounted without it.
func (b *bridge) httpMethodNotAllowed(ctx context.Context, r *http.Request) web.Encoder {
	if w := web.GetWriter(ctx); w != nil {
		w.Header().Set("Allow", strings.Join(Methods, ", "))
	}
	return errs.Newf(errs.MethodNotAllowed, "Method %s Not Allowed", r.Method)
}
