package mid

import (
	"context"
	"net/http"
	"path"

	"github.com/jrazmi/todos/bridge/scaffolding/errs"
	"github.com/jrazmi/todos/infrastructure/web"
	"github.com/jrazmi/todos/sdk/logger"
)

// Errors handles errors coming out of the call chain. Application errors
// pass through with their status; anything else becomes a 500.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			appErr := errs.GetError(err)
			if appErr == nil {
				appErr = errs.Newf(errs.Internal, "Internal Server Error")
			}

			args := []any{
				"err", err,
				"code", appErr.Code.String(),
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName),
			}
			if appErr.HTTPStatus() >= http.StatusInternalServerError {
				log.ErrorContext(ctx, "handled error during request", args...)
			} else {
				log.WarnContext(ctx, "handled error during request", args...)
			}

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Newf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}
	}
}
