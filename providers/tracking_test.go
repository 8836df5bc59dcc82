package providers_test

import (
	"testing"
	"time"

	"fedex-shipping-service/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTrackable(t *testing.T) {
	assert.True(t, providers.IsTrackable("794953535000"))
	assert.False(t, providers.IsTrackable(""))
	assert.False(t, providers.IsTrackable("   "))
}

func TestTrackingPageURL(t *testing.T) {
	assert.Equal(t,
		"https://www.fedex.com/apps/fedextrack/?action=track&tracknumbers=794953535000",
		providers.TrackingPageURL("794953535000"))
}

func TestComposeTrackRequest(t *testing.T) {
	req := providers.ComposeTrackRequest("794953535000", testConfig())

	assert.Equal(t, "key", req.WebAuthenticationDetail.UserCredential.Key)
	assert.Equal(t, "510087461", req.ClientDetail.AccountNumber)
	require.Len(t, req.SelectionDetails, 1)
	assert.Equal(t, "794953535000", req.SelectionDetails[0].PackageIdentifier.Value)
	assert.Equal(t, "TRACKING_NUMBER_OR_DOORTAG", req.SelectionDetails[0].PackageIdentifier.Type)
}

func TestFlattenTrackEvents_PreservesOrder(t *testing.T) {
	t1 := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, time.August, 21, 14, 30, 0, 0, time.UTC)

	reply := &providers.TrackReply{
		HighestSeverity: providers.SeveritySuccess,
		CompletedTrackDetails: []providers.CompletedTrackDetail{
			{
				TrackDetails: []providers.TrackDetail{
					{
						Events: []providers.TrackEvent{
							{
								Timestamp:        &t1,
								EventType:        "PU",
								EventDescription: "Picked up",
								Address:          &providers.TrackEventAddress{City: "MEMPHIS", CountryCode: "US"},
							},
							{
								Timestamp:        &t2,
								EventType:        "DL",
								EventDescription: "Delivered",
							},
						},
					},
				},
			},
			{
				TrackDetails: []providers.TrackDetail{
					{
						Events: []providers.TrackEvent{
							{EventType: "OC", EventDescription: "Shipment information sent to FedEx"},
						},
					},
				},
			},
		},
	}

	events := providers.FlattenTrackEvents(reply)
	require.Len(t, events, 3)

	assert.Equal(t, "Picked up (PU)", events[0].Description)
	assert.Equal(t, "MEMPHIS", events[0].City)
	assert.Equal(t, "US", events[0].CountryCode)
	require.NotNil(t, events[0].Timestamp)
	assert.Equal(t, t1, *events[0].Timestamp)

	// Missing address leaves location fields empty.
	assert.Equal(t, "Delivered (DL)", events[1].Description)
	assert.Empty(t, events[1].City)

	assert.Equal(t, "Shipment information sent to FedEx (OC)", events[2].Description)
	assert.Nil(t, events[2].Timestamp)
}

func TestFlattenTrackEvents_ErrorSeverityYieldsNothing(t *testing.T) {
	reply := &providers.TrackReply{
		HighestSeverity: providers.SeverityError,
		CompletedTrackDetails: []providers.CompletedTrackDetail{
			{TrackDetails: []providers.TrackDetail{{Events: []providers.TrackEvent{{EventDescription: "x"}}}}},
		},
	}
	assert.Nil(t, providers.FlattenTrackEvents(reply))
	assert.Nil(t, providers.FlattenTrackEvents(nil))
}

func TestServiceNameLookup(t *testing.T) {
	assert.Equal(t, "FedEx 2Day", providers.ServiceName("FEDEX_2_DAY"))
	assert.Equal(t, "FedEx Ground Home Delivery", providers.ServiceName("GROUND_HOME_DELIVERY"))
	assert.Equal(t, "UNKNOWN", providers.ServiceName("NOT_A_SERVICE"))

	assert.Equal(t, "FEDEX_2_DAY", providers.ServiceCode("FedEx 2Day"))
	assert.Equal(t, "UNKNOWN", providers.ServiceCode("FedEx Teleport"))
}
