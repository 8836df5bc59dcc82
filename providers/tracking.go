package providers

import (
	"fmt"
	"strings"

	"fedex-shipping-service/models"
)

const trackTransactionReference = "Track By Number Request"

// IsTrackable reports whether a tracking number is worth a carrier lookup.
func IsTrackable(trackingNumber string) bool {
	return strings.TrimSpace(trackingNumber) != ""
}

// TrackingPageURL returns the carrier's public tracking page for a number.
func TrackingPageURL(trackingNumber string) string {
	return fmt.Sprintf("https://www.fedex.com/apps/fedextrack/?action=track&tracknumbers=%s", trackingNumber)
}

// ComposeTrackRequest builds a single-number tracking document.
func ComposeTrackRequest(trackingNumber string, cfg Config) *TrackRequest {
	return &TrackRequest{
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
			CustomerTransactionID: trackTransactionReference,
		},
		SelectionDetails: []TrackSelectionDetail{
			{
				PackageIdentifier: TrackPackageIdentifier{
					Value: trackingNumber,
					Type:  "TRACKING_NUMBER_OR_DOORTAG",
				},
			},
		},
	}
}

// FlattenTrackEvents maps a tracking reply's nested completed-details into
// a single ordered event sequence, preserving reply order. Error-level
// replies yield no events.
func FlattenTrackEvents(reply *TrackReply) []models.TrackingEvent {
	if reply == nil || !severityOK(reply.HighestSeverity) {
		return nil
	}

	var events []models.TrackingEvent
	for _, completed := range reply.CompletedTrackDetails {
		for _, detail := range completed.TrackDetails {
			for _, event := range detail.Events {
				normalized := models.TrackingEvent{
					Description: fmt.Sprintf("%s (%s)", event.EventDescription, event.EventType),
					Timestamp:   event.Timestamp,
				}
				if event.Address != nil {
					normalized.City = event.Address.City
					normalized.CountryCode = event.Address.CountryCode
				}
				events = append(events, normalized)
			}
		}
	}
	return events
}
