package controllers

import (
	"net/http"
	"strings"

	"github.com/ecofinds/ecofinds-backend/api/responses"
	"github.com/ecofinds/ecofinds-backend/api/validators"
	checkoutsvc "github.com/ecofinds/ecofinds-backend/internal/checkout"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

type shippingInfoRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	Address  string  `json:"address" validate:"required"`
	City     string  `json:"city" validate:"required"`
	Zip      string  `json:"zip" validate:"required"`
	Country  string  `json:"country,omitempty"`
}

type checkoutRequest struct {
	ShippingInfo   shippingInfoRequest `json:"shipping_info" validate:"required"`
	ShippingMethod string              `json:"shipping_method" validate:"required"`
	Payment        string              `json:"payment" validate:"required"`
}

func (req checkoutRequest) toInput() (checkoutsvc.SubmitInput, error) {
	method, err := enums.ParseShippingMethod(strings.TrimSpace(req.ShippingMethod))
	if err != nil {
		return checkoutsvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method")
	}
	payment, err := enums.ParsePaymentMethod(strings.TrimSpace(req.Payment))
	if err != nil {
		return checkoutsvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	return checkoutsvc.SubmitInput{
		ShippingInfo: checkoutsvc.ShippingInfo{
			FullName: req.ShippingInfo.FullName,
			Email:    req.ShippingInfo.Email,
			Phone:    req.ShippingInfo.Phone,
			Address:  req.ShippingInfo.Address,
			City:     req.ShippingInfo.City,
			Zip:      req.ShippingInfo.Zip,
			Country:  req.ShippingInfo.Country,
		},
		ShippingMethod: method,
		PaymentMethod:  payment,
	}, nil
}

// Checkout submits the active cart and returns the created order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		ownerID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
