package mid

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/jrazmi/todos/bridge/scaffolding/errs"
	"github.com/jrazmi/todos/infrastructure/web"
)

// AllowMethods rejects any request whose method is not listed with 405 and
// an Allow header naming the accepted methods. HEAD is only accepted when
// listed explicitly.
func AllowMethods(methods ...string) web.Middleware {
	allow := strings.Join(methods, ", ")

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			if slices.Contains(methods, r.Method) {
				return next(ctx, r)
			}

			if w := web.GetWriter(ctx); w != nil {
				w.Header().Set("Allow", allow)
			}

			return errs.Newf(errs.MethodNotAllowed, "Method %s Not Allowed", r.Method)
		}
	}
}
