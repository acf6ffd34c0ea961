package middleware

import (
	"net/http"

	"hospital-management-system/pkg/authz"
	"hospital-management-system/pkg/response"

	"github.com/sirupsen/logrus"
)

// AccessMiddleware performs the single capability check every protected
// route goes through before its handler runs.
type AccessMiddleware struct {
	authorizer authz.Authorizer
	log        *logrus.Logger
}

func NewAccessMiddleware(authorizer authz.Authorizer, log *logrus.Logger) *AccessMiddleware {
	return &AccessMiddleware{authorizer: authorizer, log: log}
}

// Authorize rejects callers whose role may not perform action on resource.
// Role is read from context (set by AuthMiddleware from JWT claims)
func (m *AccessMiddleware) Authorize(resource authz.Resource, action authz.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed, err := m.authorizer.Enforce(string(role), resource, action)
			if err != nil {
				m.log.Warnf("Failed to enforce access policy: %+v", err)
				response.InternalServerError(w, "")
				return
			}
			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthorizeFunc is Authorize for a single handler function.
func (m *AccessMiddleware) AuthorizeFunc(resource authz.Resource, action authz.Action, h http.HandlerFunc) http.Handler {
	return m.Authorize(resource, action)(h)
}
