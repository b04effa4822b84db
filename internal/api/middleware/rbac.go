package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Policy is the declarative route policy table: operation → roles allowed to
// perform it. It is declared once in the router; no endpoint re-implements
// its own role list.
type Policy map[string][]string

// Require enforces the policy entry for op. An operation absent from the
// table denies every role.
func (p Policy) Require(op string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(p[op]))
	for _, r := range p[op] {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
