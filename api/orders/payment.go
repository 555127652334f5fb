package orders

import (
	"net/http"
	"orderdesk_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// multipartOverhead leaves room for boundaries and form fields on top of the
// proof file itself.
const multipartOverhead = 1 << 20

func (orm *OrderRoutesManager) UploadPaymentProof(w http.ResponseWriter, r *http.Request) {
	orderId, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, orm.cfg.Upload.MaxSize+multipartOverhead)
	if err := r.ParseMultipartForm(orm.cfg.Upload.MaxSize); err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.payment.invalidMultipartBody"),
			gecho.Send(),
		)
		return
	}

	file, header, err := r.FormFile("proof_of_payment")
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.payment.missingProofFile"),
			gecho.Send(),
		)
		return
	}
	defer file.Close()

	result, err := orm.paymentService.UploadProof(r.Context(), orderId, header.Filename, header.Size, file)
	if err != nil {
		handling.RespondError(w, orm.logger, err, "error.payment.uploadFailed")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.payment.proofUploaded"),
		gecho.WithData(map[string]any{
			"order":       result.Order,
			"emails_sent": result.EmailsSent,
		}),
		gecho.Send(),
	)
}
