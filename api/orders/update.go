package orders

import (
	"net/http"
	"orderdesk_server/handling"
	"orderdesk_server/lib"
	"orderdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (orm *OrderRoutesManager) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.UpdateOrder(r.Context(), orderId, body)
	if err != nil {
		handling.RespondError(w, orm.logger, err, "error.order.updateFailed")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.updated"),
		gecho.WithData(map[string]any{"order": order}),
		gecho.Send(),
	)
}
