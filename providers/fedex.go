package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Reply notification severities, ordered best to worst on the wire.
const (
	SeveritySuccess = "SUCCESS"
	SeverityNote    = "NOTE"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
	SeverityFailure = "FAILURE"
)

// severityOK reports whether a reply severity still carries usable data.
// ERROR and FAILURE replies carry only notifications.
func severityOK(severity string) bool {
	switch severity {
	case SeveritySuccess, SeverityNote, SeverityWarning:
		return true
	}
	return false
}

// Charge tiers returned per rated shipment detail.
const (
	RateTypeAccountPackage  = "PAYOR_ACCOUNT_PACKAGE"
	RateTypeAccountShipment = "PAYOR_ACCOUNT_SHIPMENT"
	RateTypeListPackage     = "PAYOR_LIST_PACKAGE"
	RateTypeListShipment    = "PAYOR_LIST_SHIPMENT"
)

// ---- rate request/reply documents ----

type WebAuthenticationDetail struct {
	UserCredential WebAuthenticationCredential `json:"user_credential"`
}

type WebAuthenticationCredential struct {
	Key      string `json:"key"`
	Password string `json:"password"`
}

type ClientDetail struct {
	AccountNumber string `json:"account_number"`
	MeterNumber   string `json:"meter_number"`
}

type TransactionDetail struct {
	CustomerTransactionID string `json:"customer_transaction_id"`
}

type Money struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type Weight struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Units  string `json:"units"`
}

type PartyAddress struct {
	StreetLines         []string `json:"street_lines,omitempty"`
	City                string   `json:"city,omitempty"`
	StateOrProvinceCode string   `json:"state_or_province_code"`
	PostalCode          string   `json:"postal_code,omitempty"`
	CountryCode         string   `json:"country_code"`
	Residential         bool     `json:"residential,omitempty"`
}

type Party struct {
	AccountNumber string       `json:"account_number,omitempty"`
	Address       PartyAddress `json:"address"`
}

type Payment struct {
	PaymentType string `json:"payment_type"`
	Payor       Payor  `json:"payor"`
}

type Payor struct {
	ResponsibleParty Party `json:"responsible_party"`
}

type SmartPostShipmentDetail struct {
	Indicia string `json:"indicia"`
}

type Commodity struct {
	Name           string `json:"name"`
	NumberOfPieces string `json:"number_of_pieces"`
	CustomsValue   Money  `json:"customs_value"`
}

type CommercialInvoice struct {
	Purpose string `json:"purpose"`
}

type CustomsClearanceDetail struct {
	CommercialInvoice CommercialInvoice `json:"commercial_invoice"`
	Commodities       []Commodity       `json:"commodities"`
}

type RequestedPackageLineItem struct {
	SequenceNumber    string     `json:"sequence_number"`
	GroupPackageCount string     `json:"group_package_count"`
	Weight            Weight     `json:"weight"`
	Dimensions        Dimensions `json:"dimensions"`
	InsuredValue      Money      `json:"insured_value"`
}

type RequestedShipment struct {
	ShipTimestamp             time.Time                  `json:"ship_timestamp"`
	DropoffType               string                     `json:"dropoff_type"`
	Shipper                   Party                      `json:"shipper"`
	Recipient                 Party                      `json:"recipient"`
	ShippingChargesPayment    Payment                    `json:"shipping_charges_payment"`
	SmartPostDetail           *SmartPostShipmentDetail   `json:"smart_post_detail,omitempty"`
	TotalInsuredValue         Money                      `json:"total_insured_value"`
	RateRequestTypes          []string                   `json:"rate_request_types"`
	PackageCount              string                     `json:"package_count"`
	CustomsClearanceDetail    *CustomsClearanceDetail    `json:"customs_clearance_detail,omitempty"`
	RequestedPackageLineItems []RequestedPackageLineItem `json:"requested_package_line_items"`
}

type RateRequest struct {
	WebAuthenticationDetail WebAuthenticationDetail `json:"web_authentication_detail"`
	ClientDetail            ClientDetail            `json:"client_detail"`
	TransactionDetail       TransactionDetail       `json:"transaction_detail"`
	ReturnTransitAndCommit  bool                    `json:"return_transit_and_commit"`
	CarrierCodes            []string                `json:"carrier_codes"`
	RequestedShipment       RequestedShipment       `json:"requested_shipment"`
}

type Notification struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

type ShipmentRateDetail struct {
	RateType             string `json:"rate_type"`
	TotalBillingWeight   Weight `json:"total_billing_weight"`
	TotalBaseCharge      Money  `json:"total_base_charge"`
	TotalFreightDiscounts Money `json:"total_freight_discounts"`
	TotalSurcharges      Money  `json:"total_surcharges"`
	TotalNetCharge       Money  `json:"total_net_charge"`
}

type RatedShipmentDetail struct {
	ShipmentRateDetail ShipmentRateDetail `json:"shipment_rate_detail"`
}

type RateReplyDetail struct {
	ServiceType          string                `json:"service_type"`
	RatedShipmentDetails []RatedShipmentDetail `json:"rated_shipment_details"`
}

type RateReply struct {
	HighestSeverity  string            `json:"highest_severity"`
	Notifications    []Notification    `json:"notifications"`
	RateReplyDetails []RateReplyDetail `json:"rate_reply_details"`
}

// ---- tracking request/reply documents ----

type TrackPackageIdentifier struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type TrackSelectionDetail struct {
	PackageIdentifier TrackPackageIdentifier `json:"package_identifier"`
}

type TrackRequest struct {
	WebAuthenticationDetail WebAuthenticationDetail `json:"web_authentication_detail"`
	ClientDetail            ClientDetail            `json:"client_detail"`
	TransactionDetail       TransactionDetail       `json:"transaction_detail"`
	SelectionDetails        []TrackSelectionDetail  `json:"selection_details"`
}

type TrackEventAddress struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
}

type TrackEvent struct {
	Timestamp        *time.Time         `json:"timestamp,omitempty"`
	EventType        string             `json:"event_type"`
	EventDescription string             `json:"event_description"`
	Address          *TrackEventAddress `json:"address,omitempty"`
}

type TrackDetail struct {
	Events []TrackEvent `json:"events"`
}

type CompletedTrackDetail struct {
	TrackDetails []TrackDetail `json:"track_details"`
}

type TrackReply struct {
	HighestSeverity       string                 `json:"highest_severity"`
	Notifications         []Notification         `json:"notifications"`
	CompletedTrackDetails []CompletedTrackDetail `json:"completed_track_details"`
}

// ---- HTTP transport ----

// FedExClient implements CarrierTransport against the FedEx web services
// endpoint configured in Config.URL.
type FedExClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewFedExClient creates a new FedExClient.
func NewFedExClient(cfg Config) *FedExClient {
	return &FedExClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetRates submits a rate request document.
func (c *FedExClient) GetRates(ctx context.Context, req *RateRequest) (*RateReply, error) {
	var reply RateReply
	if err := c.doRequest(ctx, "/rate", req, &reply); err != nil {
		return nil, fmt.Errorf("fedex GetRates: %w", err)
	}
	return &reply, nil
}

// Track submits a tracking request document.
func (c *FedExClient) Track(ctx context.Context, req *TrackRequest) (*TrackReply, error) {
	var reply TrackReply
	if err := c.doRequest(ctx, "/track", req, &reply); err != nil {
		return nil, fmt.Errorf("fedex Track: %w", err)
	}
	return &reply, nil
}

func (c *FedExClient) doRequest(ctx context.Context, path string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fedex API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
