package orders

import (
	"net/http"
	"orderdesk_server/handling"
	"orderdesk_server/lib"
	"orderdesk_server/structs"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateOrderRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), body)
	if err != nil {
		handling.RespondError(w, orm.logger, err, "error.order.creationFailed")
		return
	}

	handling.Created(w, "success.order.created", map[string]any{
		"order": order,
	})
}
