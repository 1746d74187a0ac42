package http

import (
	"net/http"
	"strings"

	"storefront/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// RequestValidator rejects requests whose parameters or body do not match doc. Routes are
// looked up by the echo route pattern, so basePath must be the group prefix the generated
// handlers are mounted under. Authentication is left to ActorMiddleware.
func RequestValidator(doc *openapi3.T, basePath string) echo.MiddlewareFunc {
	routes := make(map[string]*routers.Route)
	for path, item := range doc.Paths.Map() {
		for method, operation := range item.Operations() {
			routes[method+" "+basePath+echoPath(path)] = &routers.Route{
				Spec:      doc,
				Path:      path,
				PathItem:  item,
				Method:    method,
				Operation: operation,
			}
		}
	}

	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route, ok := routes[c.Request().Method+" "+c.Path()]
			if !ok {
				return next(c)
			}

			params := make(map[string]string, len(c.ParamNames()))
			for i, name := range c.ParamNames() {
				params[name] = c.ParamValues()[i]
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: params,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}
			return next(c)
		}
	}
}

// echoPath turns /orders/{id} into /orders/:id.
func echoPath(path string) string {
	path = strings.ReplaceAll(path, "{", ":")
	return strings.ReplaceAll(path, "}", "")
}

func validationMessage(err error) string {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		reason := e.Reason
		if e.Err != nil {
			reason = firstLine(e.Err)
		}
		if e.Parameter != nil {
			return "invalid parameter " + e.Parameter.Name + ": " + reason
		}
		if e.RequestBody != nil {
			return "invalid request body: " + reason
		}
	}
	return firstLine(err)
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
