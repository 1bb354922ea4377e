package revisions

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Sort is empty: revisions are always listed in ascending revision order.
var Sort = paging.Sortable{}

// ParamNumber reads a revision number path parameter.
func ParamNumber(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, apperror.NewBadRequest(fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return n, nil
}
