package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address represents a physical mailing address used for shipping.
type Address struct {
	Street1    string `json:"street1"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"` // state/province abbreviation, e.g. "CA"
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"` // ISO 3166-1 alpha-2, e.g. "US"
}

// PackageItem is one line of cart content. Values are in the store's native
// measurement units; the packing layer converts them to carrier units.
type PackageItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price"`
}

// Package is one physical shippable unit in carrier units (pounds, inches).
// The carrier rejects zero-sized packages, so weight and dimensions are
// never below the configured floor (dimensions may be reported as zero on
// the wire when the merchant opts not to disclose them).
type Package struct {
	SequenceNumber string  `json:"sequence_number"` // 1-based, string for wire compatibility
	Weight         float64 `json:"weight"`
	Width          float64 `json:"width"`
	Length         float64 `json:"length"`
	Height         float64 `json:"height"`
	InsuredValue   float64 `json:"insured_value"`
	Currency       string  `json:"currency"`
}

// RateQuoteRequest is the payload for calculating shipping rates.
// Origin is optional; the warehouse address from config is used when absent.
type RateQuoteRequest struct {
	Origin      *Address      `json:"origin,omitempty"`
	Destination Address       `json:"destination" binding:"required"`
	Items       []PackageItem `json:"items" binding:"required,min=1,dive"`
}

// RateQuote is one named carrier service with its resolved price in the
// store's primary currency, handling fee included.
type RateQuote struct {
	ServiceName string  `json:"service_name"` // e.g. "FedEx 2Day"
	Rate        float64 `json:"rate"`
}

// RateQuoteResult is the outcome of a quote computation. Zero quotes with
// error strings is a normal "no rates available" business outcome, not a
// failure of the request itself.
type RateQuoteResult struct {
	Quotes []RateQuote `json:"quotes"`
	Errors []string    `json:"errors,omitempty"`
}

// TrackingEvent is a normalized shipment occurrence from a tracking reply.
type TrackingEvent struct {
	Description string     `json:"description"`
	City        string     `json:"city,omitempty"`
	CountryCode string     `json:"country_code,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// TrackingResult is the normalized response for a tracking lookup.
type TrackingResult struct {
	TrackingNumber string          `json:"tracking_number"`
	URL            string          `json:"url"`
	Events         []TrackingEvent `json:"events"`
}

// QuoteRecord is the GORM model persisted per rate computation.
type QuoteRecord struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DestinationCountry string         `gorm:"type:varchar(2);index" json:"destination_country"`
	DestinationPostal  string         `gorm:"type:varchar(32)" json:"destination_postal"`
	PackingStrategy    string         `gorm:"type:varchar(32)" json:"packing_strategy"`
	PackageCount       int            `gorm:"not null" json:"package_count"`
	ShipmentCurrency   string         `gorm:"type:varchar(3)" json:"shipment_currency"`
	QuoteCount         int            `gorm:"not null" json:"quote_count"`
	CheapestService    string         `gorm:"type:varchar(128)" json:"cheapest_service"`
	CheapestRate       float64        `json:"cheapest_rate"`
	ErrorText          string         `gorm:"type:text" json:"error_text,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// RatesQuotedEvent is published to SNS after a rate computation.
type RatesQuotedEvent struct {
	EventType          string    `json:"event_type"`
	QuoteID            string    `json:"quote_id"`
	DestinationCountry string    `json:"destination_country"`
	PackageCount       int       `json:"package_count"`
	QuoteCount         int       `json:"quote_count"`
	Timestamp          time.Time `json:"timestamp"`
}

// ShipmentTrackedEvent is published to SNS after a tracking lookup
// returns at least one event.
type ShipmentTrackedEvent struct {
	EventType      string    `json:"event_type"`
	TrackingNumber string    `json:"tracking_number"`
	EventCount     int       `json:"event_count"`
	LastEvent      string    `json:"last_event,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
