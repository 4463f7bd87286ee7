package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/placement/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

// Bind reads "?ordering=name,-batch"; a leading "-" sorts that field descending.
func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}
	ord.Orderings = core.ParseOrdering(val)
}
