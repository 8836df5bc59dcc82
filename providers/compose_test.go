package providers_test

import (
	"testing"
	"time"

	"fedex-shipping-service/models"
	"fedex-shipping-service/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usOrigin = models.Address{
		Street1:    "123 Warehouse Blvd",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94105",
		Country:    "US",
	}
	usDestination = models.Address{
		Street1:    "456 Main St",
		City:       "Austin",
		State:      "TX",
		PostalCode: "73301",
		Country:    "US",
	}
)

func testConfig() providers.Config {
	return providers.Config{
		URL:            "https://wsbeta.fedex.com:443/web-services",
		Key:            "key",
		Password:       "pass",
		AccountNumber:  "510087461",
		MeterNumber:    "118501898",
		PassDimensions: true,
	}
}

func onePackage() []models.Package {
	return []models.Package{
		{SequenceNumber: "1", Weight: 10, Width: 8, Length: 12, Height: 6, InsuredValue: 100, Currency: "USD"},
	}
}

// A Wednesday, so the ship date never shifts unless a test wants it to.
var wednesday = time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)

func TestComposeRateRequest_MissingOriginCountry(t *testing.T) {
	origin := usOrigin
	origin.Country = ""
	_, err := providers.ComposeRateRequest(origin, usDestination, onePackage(), "USD", 100, testConfig(), wednesday)
	assert.ErrorIs(t, err, providers.ErrOriginCountryMissing)
}

func TestComposeRateRequest_CredentialsAndCarriers(t *testing.T) {
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)

	assert.Equal(t, "key", req.WebAuthenticationDetail.UserCredential.Key)
	assert.Equal(t, "pass", req.WebAuthenticationDetail.UserCredential.Password)
	assert.Equal(t, "510087461", req.ClientDetail.AccountNumber)
	assert.Equal(t, "118501898", req.ClientDetail.MeterNumber)
	assert.Equal(t, []string{"FDXE", "FDXG", "FXSP"}, req.CarrierCodes)
	assert.True(t, req.ReturnTransitAndCommit)
	assert.Equal(t, []string{"PREFERRED", "LIST"}, req.RequestedShipment.RateRequestTypes)
	assert.Equal(t, "SENDER", req.RequestedShipment.ShippingChargesPayment.PaymentType)
	assert.Equal(t, "510087461", req.RequestedShipment.ShippingChargesPayment.Payor.ResponsibleParty.AccountNumber)
}

func TestComposeRateRequest_SaturdayShipDateShifts(t *testing.T) {
	saturday := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, testConfig(), saturday)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, req.RequestedShipment.ShipTimestamp.Weekday())
	assert.Equal(t, saturday.AddDate(0, 0, 2), req.RequestedShipment.ShipTimestamp)
}

func TestComposeRateRequest_WeekdayShipDateUnchanged(t *testing.T) {
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)
	assert.Equal(t, wednesday, req.RequestedShipment.ShipTimestamp)
}

func TestComposeRateRequest_DropoffTypes(t *testing.T) {
	cases := map[string]string{
		"drop_box":        "DROP_BOX",
		"regular_pickup":  "REGULAR_PICKUP",
		"request_courier": "REQUEST_COURIER",
		"station":         "STATION",
		"":                "BUSINESS_SERVICE_CENTER",
		"bogus":           "BUSINESS_SERVICE_CENTER",
	}
	for keyword, wire := range cases {
		cfg := testConfig()
		cfg.DropoffType = providers.ParseDropoffType(keyword)
		req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, cfg, wednesday)
		require.NoError(t, err)
		assert.Equal(t, wire, req.RequestedShipment.DropoffType, "keyword %q", keyword)
	}
}

func TestComposeRateRequest_StateCodeOnlyForUSAndCanada(t *testing.T) {
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)
	assert.Equal(t, "CA", req.RequestedShipment.Shipper.Address.StateOrProvinceCode)
	assert.Equal(t, "TX", req.RequestedShipment.Recipient.Address.StateOrProvinceCode)

	germanDest := models.Address{Street1: "Unter den Linden 1", City: "Berlin", State: "BE", PostalCode: "10117", Country: "DE"}
	req, err = providers.ComposeRateRequest(usOrigin, germanDest, onePackage(), "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)
	assert.Empty(t, req.RequestedShipment.Recipient.Address.StateOrProvinceCode)
	assert.Equal(t, "DE", req.RequestedShipment.Recipient.Address.CountryCode)
}

func TestComposeRateRequest_ResidentialFlag(t *testing.T) {
	cfg := testConfig()
	cfg.UseResidentialRates = true
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, cfg, wednesday)
	require.NoError(t, err)
	assert.True(t, req.RequestedShipment.Recipient.Address.Residential)
	assert.False(t, req.RequestedShipment.Shipper.Address.Residential)
}

func TestComposeRateRequest_IndiaDomesticCustoms(t *testing.T) {
	inOrigin := models.Address{Street1: "1 MG Road", City: "Bengaluru", PostalCode: "560001", Country: "IN"}
	inDest := models.Address{Street1: "2 Park St", City: "Kolkata", PostalCode: "700016", Country: "IN"}

	req, err := providers.ComposeRateRequest(inOrigin, inDest, onePackage(), "INR", 2500, testConfig(), wednesday)
	require.NoError(t, err)

	customs := req.RequestedShipment.CustomsClearanceDetail
	require.NotNil(t, customs)
	assert.Equal(t, "SOLD", customs.CommercialInvoice.Purpose)
	require.Len(t, customs.Commodities, 1)
	assert.Equal(t, "1", customs.Commodities[0].Name)
	assert.Equal(t, "1", customs.Commodities[0].NumberOfPieces)
	assert.Equal(t, 2500.0, customs.Commodities[0].CustomsValue.Amount)
	assert.Equal(t, "INR", customs.Commodities[0].CustomsValue.Currency)
}

func TestComposeRateRequest_NoCustomsOutsideIndiaDomestic(t *testing.T) {
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)
	assert.Nil(t, req.RequestedShipment.CustomsClearanceDetail)

	inDest := models.Address{Street1: "2 Park St", City: "Kolkata", PostalCode: "700016", Country: "IN"}
	req, err = providers.ComposeRateRequest(usOrigin, inDest, onePackage(), "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)
	assert.Nil(t, req.RequestedShipment.CustomsClearanceDetail)
}

func TestComposeRateRequest_SmartPostIndicia(t *testing.T) {
	cfg := testConfig()
	cfg.CarrierServicesOffered = "FEDEX_GROUND:SMART_POST"
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, cfg, wednesday)
	require.NoError(t, err)
	require.NotNil(t, req.RequestedShipment.SmartPostDetail)
	assert.Equal(t, "PARCEL_SELECT", req.RequestedShipment.SmartPostDetail.Indicia)

	cfg.CarrierServicesOffered = "FEDEX_GROUND"
	req, err = providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, cfg, wednesday)
	require.NoError(t, err)
	assert.Nil(t, req.RequestedShipment.SmartPostDetail)
}

func TestComposeRateRequest_PackageLineItems(t *testing.T) {
	packages := []models.Package{
		{SequenceNumber: "1", Weight: 10.5, Width: 8, Length: 12, Height: 6, InsuredValue: 60, Currency: "USD"},
		{SequenceNumber: "2", Weight: 4, Width: 5, Length: 5, Height: 5, InsuredValue: 40, Currency: "USD"},
	}
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, packages, "USD", 100, testConfig(), wednesday)
	require.NoError(t, err)

	assert.Equal(t, "2", req.RequestedShipment.PackageCount)
	require.Len(t, req.RequestedShipment.RequestedPackageLineItems, 2)

	first := req.RequestedShipment.RequestedPackageLineItems[0]
	assert.Equal(t, "1", first.SequenceNumber)
	assert.Equal(t, "1", first.GroupPackageCount)
	assert.Equal(t, "LB", first.Weight.Units)
	assert.Equal(t, 10.5, first.Weight.Value)
	assert.Equal(t, "IN", first.Dimensions.Units)
	assert.Equal(t, "12", first.Dimensions.Length)
	assert.Equal(t, "8", first.Dimensions.Width)
	assert.Equal(t, "6", first.Dimensions.Height)
	assert.Equal(t, 60.0, first.InsuredValue.Amount)
	assert.Equal(t, "USD", first.InsuredValue.Currency)

	assert.Equal(t, 100.0, req.RequestedShipment.TotalInsuredValue.Amount)
	assert.Equal(t, "USD", req.RequestedShipment.TotalInsuredValue.Currency)
}

func TestComposeRateRequest_DimensionsWithheld(t *testing.T) {
	cfg := testConfig()
	cfg.PassDimensions = false
	req, err := providers.ComposeRateRequest(usOrigin, usDestination, onePackage(), "USD", 100, cfg, wednesday)
	require.NoError(t, err)

	dims := req.RequestedShipment.RequestedPackageLineItems[0].Dimensions
	assert.Equal(t, "0", dims.Length)
	assert.Equal(t, "0", dims.Width)
	assert.Equal(t, "0", dims.Height)
	assert.Equal(t, "IN", dims.Units)
}
