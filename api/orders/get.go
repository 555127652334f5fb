package orders

import (
	"net/http"
	"orderdesk_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.GetOrder(r.Context(), orderId)
	if err != nil {
		handling.RespondError(w, orm.logger, err, "error.order.fetchFailed")
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"order": order}),
		gecho.Send(),
	)
}
