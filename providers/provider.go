package providers

import (
	"context"
	"strings"
)

// CarrierTransport is the black-box round trip to the carrier's rate and
// tracking services. Implementations own the wire protocol; callers own
// timeouts via ctx and retry policy.
type CarrierTransport interface {
	// GetRates submits a rate request and returns the carrier's reply.
	GetRates(ctx context.Context, req *RateRequest) (*RateReply, error)

	// Track submits a tracking request and returns the carrier's reply.
	Track(ctx context.Context, req *TrackRequest) (*TrackReply, error)
}

// DropoffType is the merchant's method of handing packages to the carrier.
type DropoffType int

const (
	DropoffBusinessServiceCenter DropoffType = iota
	DropoffDropBox
	DropoffRegularPickup
	DropoffRequestCourier
	DropoffStation
)

// ParseDropoffType maps a configuration keyword to a DropoffType, defaulting
// to the business service center.
func ParseDropoffType(s string) DropoffType {
	switch s {
	case "drop_box":
		return DropoffDropBox
	case "regular_pickup":
		return DropoffRegularPickup
	case "request_courier":
		return DropoffRequestCourier
	case "station":
		return DropoffStation
	default:
		return DropoffBusinessServiceCenter
	}
}

// wireValue returns the carrier's enumeration value for the drop-off type.
func (d DropoffType) wireValue() string {
	switch d {
	case DropoffDropBox:
		return "DROP_BOX"
	case DropoffRegularPickup:
		return "REGULAR_PICKUP"
	case DropoffRequestCourier:
		return "REQUEST_COURIER"
	case DropoffStation:
		return "STATION"
	default:
		return "BUSINESS_SERVICE_CENTER"
	}
}

// Config is the carrier configuration surface consumed by this package.
// It is owned and persisted elsewhere; read-only within a computation.
type Config struct {
	URL           string
	Key           string
	Password      string
	AccountNumber string
	MeterNumber   string

	DropoffType              DropoffType
	UseResidentialRates      bool
	ApplyDiscounts           bool
	AdditionalHandlingCharge float64
	CarrierServicesOffered   string // colon-delimited allow-list of service codes
	PassDimensions           bool
}

// serviceOffered reports whether the service code appears in the configured
// colon-delimited allow-list. An empty list offers every service.
func serviceOffered(offered, code string) bool {
	if offered == "" {
		return true
	}
	for _, s := range strings.Split(offered, ":") {
		if strings.TrimSpace(s) == code {
			return true
		}
	}
	return false
}
