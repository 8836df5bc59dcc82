package providers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"fedex-shipping-service/models"
)

const rateTransactionReference = "Rate Available Services Request"

// ErrOriginCountryMissing aborts a rate computation: without an origin
// country the request cannot be priced at all.
var ErrOriginCountryMissing = errors.New("origin country is not specified")

// ComposeRateRequest assembles a carrier rate-quote document from the
// shipment addressing, the packed packages and the resolved shipment
// currency. subTotal is the cart subtotal expressed in that currency. The
// caller supplies the clock so the ship date is testable.
func ComposeRateRequest(origin, destination models.Address, packages []models.Package, shipmentCurrency string, subTotal float64, cfg Config, now time.Time) (*RateRequest, error) {
	if origin.Country == "" {
		return nil, ErrOriginCountryMissing
	}

	req := &RateRequest{
		WebAuthenticationDetail: WebAuthenticationDetail{
			UserCredential: WebAuthenticationCredential{
				Key:      cfg.Key,
				Password: cfg.Password,
			},
		},
		ClientDetail: ClientDetail{
			AccountNumber: cfg.AccountNumber,
			MeterNumber:   cfg.MeterNumber,
		},
		TransactionDetail: TransactionDetail{
			CustomerTransactionID: rateTransactionReference,
		},
		ReturnTransitAndCommit: true,
		CarrierCodes:           []string{"FDXE", "FDXG", "FXSP"},
	}

	if strings.Contains(cfg.CarrierServicesOffered, "SMART_POST") {
		req.RequestedShipment.SmartPostDetail = &SmartPostShipmentDetail{
			Indicia: "PARCEL_SELECT",
		}
	}

	setOrigin(req, origin)
	setDestination(req, destination, cfg.UseResidentialRates)
	setShipmentDetails(req, subTotal, shipmentCurrency, cfg, now)
	setPayment(req, cfg.AccountNumber)
	setPackages(req, packages, cfg.PassDimensions)

	return req, nil
}

func setOrigin(req *RateRequest, origin models.Address) {
	addr := PartyAddress{
		StreetLines: []string{origin.Street1},
		City:        origin.City,
		PostalCode:  origin.PostalCode,
		CountryCode: origin.Country,
	}
	if includeStateProvinceCode(origin.Country) {
		addr.StateOrProvinceCode = origin.State
	}
	req.RequestedShipment.Shipper = Party{Address: addr}
}

func setDestination(req *RateRequest, destination models.Address, residential bool) {
	addr := PartyAddress{
		StreetLines: []string{destination.Street1},
		City:        destination.City,
		PostalCode:  destination.PostalCode,
		CountryCode: destination.Country,
		Residential: residential,
	}
	if includeStateProvinceCode(destination.Country) {
		addr.StateOrProvinceCode = destination.State
	}
	req.RequestedShipment.Recipient = Party{Address: addr}
}

func setShipmentDetails(req *RateRequest, subTotal float64, currencyCode string, cfg Config, now time.Time) {
	req.RequestedShipment.DropoffType = cfg.DropoffType.wireValue()
	req.RequestedShipment.TotalInsuredValue = Money{
		Amount:   subTotal,
		Currency: currencyCode,
	}

	// Rating on a Saturday makes FedEx include the Saturday-pickup
	// surcharge in every express quote, so shift the ship date past it.
	shipTimestamp := now
	if shipTimestamp.Weekday() == time.Saturday {
		shipTimestamp = shipTimestamp.AddDate(0, 0, 2)
	}
	req.RequestedShipment.ShipTimestamp = shipTimestamp

	// Request both tiers so the reply carries discounted and list charges.
	req.RequestedShipment.RateRequestTypes = []string{"PREFERRED", "LIST"}

	// India domestic lanes require a customs/commodity declaration.
	if strings.EqualFold(req.RequestedShipment.Shipper.Address.CountryCode, "IN") &&
		strings.EqualFold(req.RequestedShipment.Recipient.Address.CountryCode, "IN") {
		req.RequestedShipment.CustomsClearanceDetail = &CustomsClearanceDetail{
			CommercialInvoice: CommercialInvoice{Purpose: "SOLD"},
			Commodities: []Commodity{
				{
					Name:           "1",
					NumberOfPieces: "1",
					CustomsValue: Money{
						Amount:   subTotal,
						Currency: currencyCode,
					},
				},
			},
		}
	}
}

func setPayment(req *RateRequest, accountNumber string) {
	req.RequestedShipment.ShippingChargesPayment = Payment{
		PaymentType: "SENDER",
		Payor: Payor{
			ResponsibleParty: Party{AccountNumber: accountNumber},
		},
	}
}

func setPackages(req *RateRequest, packages []models.Package, passDimensions bool) {
	req.RequestedShipment.PackageCount = strconv.Itoa(len(packages))

	lineItems := make([]RequestedPackageLineItem, 0, len(packages))
	for _, pkg := range packages {
		item := RequestedPackageLineItem{
			SequenceNumber:    pkg.SequenceNumber,
			GroupPackageCount: "1",
			Weight: Weight{
				Units: "LB",
				Value: pkg.Weight,
			},
			Dimensions: Dimensions{
				Length: "0",
				Width:  "0",
				Height: "0",
				Units:  "IN",
			},
			InsuredValue: Money{
				Amount:   pkg.InsuredValue,
				Currency: pkg.Currency,
			},
		}
		if passDimensions {
			item.Dimensions.Length = formatDimension(pkg.Length)
			item.Dimensions.Width = formatDimension(pkg.Width)
			item.Dimensions.Height = formatDimension(pkg.Height)
		}
		lineItems = append(lineItems, item)
	}
	req.RequestedShipment.RequestedPackageLineItems = lineItems
}

// includeStateProvinceCode reports whether FedEx expects a state/province
// code for the country (US and Canada only).
func includeStateProvinceCode(countryCode string) bool {
	return strings.EqualFold(countryCode, "US") || strings.EqualFold(countryCode, "CA")
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
