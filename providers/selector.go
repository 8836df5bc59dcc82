package providers

import (
	"fmt"

	"fedex-shipping-service/currency"
	"fedex-shipping-service/models"
)

// SelectorOptions carries the merchant preferences applied when picking
// charges out of a rate reply.
type SelectorOptions struct {
	OfferedServices string // colon-delimited allow-list of service codes; empty offers all
	ApplyDiscounts  bool
	HandlingFee     float64 // flat surcharge added to every quote, primary currency
	Converter       currency.Converter
}

// SelectQuotes filters a carrier rate reply against the offered services and
// picks one net charge per service, converted to the store's primary
// currency with the handling fee applied. Zero quotes plus error strings is
// the expected outcome of an error-level reply; the function never fails
// outright.
func SelectQuotes(reply *RateReply, opts SelectorOptions) ([]models.RateQuote, []string) {
	if reply == nil {
		return nil, []string{"could not get reply from shipping server"}
	}

	if !severityOK(reply.HighestSeverity) {
		if len(reply.Notifications) > 0 && reply.Notifications[0].Message != "" {
			return nil, []string{reply.Notifications[0].Message}
		}
		return nil, []string{"could not get reply from shipping server"}
	}

	if len(reply.RateReplyDetails) == 0 {
		if len(reply.Notifications) > 0 && reply.Notifications[0].Message != "" {
			n := reply.Notifications[0]
			return nil, []string{fmt.Sprintf("%s (code: %s)", n.Message, n.Code)}
		}
		return nil, []string{"could not get reply from shipping server"}
	}

	var quotes []models.RateQuote
	for _, detail := range reply.RateReplyDetails {
		serviceName := ServiceName(detail.ServiceType)
		if serviceName == "UNKNOWN" {
			continue
		}
		if !serviceOffered(opts.OfferedServices, detail.ServiceType) {
			continue
		}

		charge, ok := selectNetCharge(detail.RatedShipmentDetails, opts.ApplyDiscounts)
		if !ok {
			// The carrier did not quote this tier; not an error.
			continue
		}

		amount := charge.Amount
		if opts.Converter != nil {
			amount = opts.Converter.ToPrimary(charge.Amount, charge.Currency)
		}

		quotes = append(quotes, models.RateQuote{
			ServiceName: serviceName,
			Rate:        amount + opts.HandlingFee,
		})
	}

	return quotes, nil
}

// selectNetCharge applies the discount/list precedence over a service's
// charge-type line items: an account-tier charge wins when discounts are
// enabled, otherwise the first list-tier charge; every other rate type is
// ignored.
func selectNetCharge(details []RatedShipmentDetail, applyDiscounts bool) (Money, bool) {
	if applyDiscounts {
		for _, detail := range details {
			rateType := detail.ShipmentRateDetail.RateType
			if rateType == RateTypeAccountPackage || rateType == RateTypeAccountShipment {
				return detail.ShipmentRateDetail.TotalNetCharge, true
			}
		}
	}
	for _, detail := range details {
		rateType := detail.ShipmentRateDetail.RateType
		if rateType == RateTypeListPackage || rateType == RateTypeListShipment {
			return detail.ShipmentRateDetail.TotalNetCharge, true
		}
	}
	return Money{}, false
}
