package handler // handler defines http handlers

import (
    "errors"   // sentinel values used in getUserID
    "log"      // operator-visible logging of infrastructure failures
    "net/http" // status codes
    "strconv"  // string-to-number conversions
    "strings"  // trimming helpers

    "github.com/labstack/echo/v4" // echo defines request context types
)

// serverError logs the underlying failure for the operator and answers the
// client with a generic 500.  Driver and broker detail stays out of the
// response body; the log line is the only place it appears.
func serverError(c echo.Context, scope, msg string, err error) error {
    log.Printf("%s: %s: %v", scope, msg, err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64.  JWT numeric claims decode as
// float64, so that case is the common one.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// parseID converts an identifier carried in a request body or path into
// the uint64 primary-key format the stores use.  Empty and malformed
// values are both rejected; zero is not a valid key.
func parseID(raw string) (uint64, bool) {
    s := strings.TrimSpace(raw)
    if s == "" {
        return 0, false
    }
    n, err := strconv.ParseUint(s, 10, 64)
    if err != nil || n == 0 {
        return 0, false
    }
    return n, true
}

// pathID parses the :id path parameter of the current route.
func pathID(c echo.Context) (uint64, bool) {
    return parseID(c.Param("id"))
}
