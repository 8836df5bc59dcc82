package services

import (
	"context"
	"encoding/json"
	"time"

	"fedex-shipping-service/awsutil"
	"fedex-shipping-service/currency"
	"fedex-shipping-service/models"
	"fedex-shipping-service/packing"
	"fedex-shipping-service/providers"
	"fedex-shipping-service/repository"
	"fedex-shipping-service/units"

	"go.uber.org/zap"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// QuoteConfig groups the request-independent quote computation settings.
type QuoteConfig struct {
	Carrier       providers.Config
	Strategy      packing.Strategy
	WeightUnit    units.Unit
	DimensionUnit units.Unit
	PackageVolume int // cubic inches, ByVolume per-package hint
}

// ShippingService defines the business logic interface.
type ShippingService interface {
	GetRates(ctx context.Context, req *models.RateQuoteRequest) (*models.RateQuoteResult, *ServiceError)
	Track(ctx context.Context, trackingNumber string) (*models.TrackingResult, *ServiceError)
	ListQuotes(ctx context.Context, page, limit int) ([]models.QuoteRecord, int64, *ServiceError)
}

type shippingServiceImpl struct {
	repo        repository.QuoteRepository
	transport   providers.CarrierTransport
	converter   currency.Converter
	cfg         QuoteConfig
	snsClient   awsutil.SNSPublisher
	snsTopicArn string
	metrics     awsutil.MetricsPublisher
	originAddr  models.Address // default ship-from address (warehouse)
	now         func() time.Time
	logger      *zap.Logger
}

// NewShippingService creates a new ShippingService.
func NewShippingService(
	repo repository.QuoteRepository,
	transport providers.CarrierTransport,
	converter currency.Converter,
	cfg QuoteConfig,
	snsClient awsutil.SNSPublisher,
	snsTopicArn string,
	metrics awsutil.MetricsPublisher,
	originAddr models.Address,
	logger *zap.Logger,
) ShippingService {
	return &shippingServiceImpl{
		repo:        repo,
		transport:   transport,
		converter:   converter,
		cfg:         cfg,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		metrics:     metrics,
		originAddr:  originAddr,
		now:         time.Now,
		logger:      logger,
	}
}

// GetRates packs the cart, queries the carrier and selects the offered
// quotes. Only configuration problems produce a ServiceError; carrier and
// transport failures come back as a zero-quote result with error strings,
// since "no rates available" must not break checkout.
func (s *shippingServiceImpl) GetRates(ctx context.Context, req *models.RateQuoteRequest) (*models.RateQuoteResult, *ServiceError) {
	origin := s.originAddr
	if req.Origin != nil {
		origin = *req.Origin
	}

	primary := s.converter.Primary()
	shipmentCurrency := currency.ResolveShipmentCurrency(origin.Country, req.Destination.Country, primary, s.converter.Known)

	subTotal := cartSubTotal(req.Items)
	if shipmentCurrency != primary {
		subTotal = s.converter.FromPrimary(subTotal, shipmentCurrency)
	}

	packages, err := packing.Pack(req.Items, packing.Options{
		Strategy:      s.cfg.Strategy,
		WeightUnit:    s.cfg.WeightUnit,
		DimensionUnit: s.cfg.DimensionUnit,
		SubTotal:      subTotal,
		Currency:      shipmentCurrency,
		PackageVolume: s.cfg.PackageVolume,
	})
	if err != nil {
		s.logger.Error("Packing failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Shipping configuration error: " + err.Error()}
	}

	rateReq, err := providers.ComposeRateRequest(origin, req.Destination, packages, shipmentCurrency, subTotal, s.cfg.Carrier, s.now())
	if err != nil {
		s.logger.Error("Rate request composition failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Shipping configuration error: " + err.Error()}
	}

	var quotes []models.RateQuote
	var errStrings []string

	reply, transportErr := s.transport.GetRates(ctx, rateReq)
	if transportErr != nil {
		s.logger.Error("Carrier rate call failed", zap.Error(transportErr))
		errStrings = []string{transportErr.Error()}
	} else {
		quotes, errStrings = providers.SelectQuotes(reply, providers.SelectorOptions{
			OfferedServices: s.cfg.Carrier.CarrierServicesOffered,
			ApplyDiscounts:  s.cfg.Carrier.ApplyDiscounts,
			HandlingFee:     s.cfg.Carrier.AdditionalHandlingCharge,
			Converter:       s.converter,
		})
	}

	result := &models.RateQuoteResult{Quotes: quotes, Errors: errStrings}

	record := buildQuoteRecord(req, s.cfg.Strategy, shipmentCurrency, len(packages), result)
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Warn("Failed to persist quote record", zap.Error(err))
	}

	s.logger.Info("Rates computed",
		zap.String("destination_country", req.Destination.Country),
		zap.Int("package_count", len(packages)),
		zap.Int("quote_count", len(quotes)),
	)

	s.publishEvent(ctx, models.RatesQuotedEvent{
		EventType:          "rates_quoted",
		QuoteID:            record.ID.String(),
		DestinationCountry: req.Destination.Country,
		PackageCount:       len(packages),
		QuoteCount:         len(quotes),
		Timestamp:          time.Now(),
	})

	s.countMetric(ctx, "QuoteRequests", map[string]string{"Strategy": s.cfg.Strategy.String()})
	if len(quotes) == 0 {
		s.countMetric(ctx, "QuoteFailures", nil)
	}

	return result, nil
}

// Track fetches tracking events for a number. Tracking is best-effort:
// carrier or transport failures log and yield an empty event sequence so
// shipment display never blocks on the carrier.
func (s *shippingServiceImpl) Track(ctx context.Context, trackingNumber string) (*models.TrackingResult, *ServiceError) {
	result := &models.TrackingResult{
		TrackingNumber: trackingNumber,
		URL:            providers.TrackingPageURL(trackingNumber),
		Events:         []models.TrackingEvent{},
	}

	if !providers.IsTrackable(trackingNumber) {
		return result, nil
	}

	reply, err := s.transport.Track(ctx, providers.ComposeTrackRequest(trackingNumber, s.cfg.Carrier))
	if err != nil {
		s.logger.Error("Carrier tracking call failed",
			zap.String("tracking_number", trackingNumber),
			zap.Error(err),
		)
		return result, nil
	}

	if events := providers.FlattenTrackEvents(reply); len(events) > 0 {
		result.Events = events

		s.publishEvent(ctx, models.ShipmentTrackedEvent{
			EventType:      "shipment_tracked",
			TrackingNumber: trackingNumber,
			EventCount:     len(events),
			LastEvent:      events[len(events)-1].Description,
			Timestamp:      time.Now(),
		})
	}

	s.countMetric(ctx, "TrackingLookups", nil)

	return result, nil
}

// ListQuotes returns the paginated quote history.
func (s *shippingServiceImpl) ListQuotes(ctx context.Context, page, limit int) ([]models.QuoteRecord, int64, *ServiceError) {
	records, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list quote records", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to load quote history"}
	}
	return records, total, nil
}

// publishEvent marshals an event and publishes it to SNS (non-fatal on error).
func (s *shippingServiceImpl) publishEvent(ctx context.Context, event interface{}) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal SNS event", zap.Error(err))
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, b); err != nil {
		s.logger.Error("Failed to publish SNS event", zap.Error(err))
	}
}

func (s *shippingServiceImpl) countMetric(ctx context.Context, name string, dims map[string]string) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.CountMetric(ctx, name, dims); err != nil {
		s.logger.Warn("Failed to publish metric", zap.String("metric", name), zap.Error(err))
	}
}

func cartSubTotal(items []models.PackageItem) float64 {
	var sum float64
	for _, item := range items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	return sum
}

func buildQuoteRecord(req *models.RateQuoteRequest, strategy packing.Strategy, shipmentCurrency string, packageCount int, result *models.RateQuoteResult) *models.QuoteRecord {
	record := &models.QuoteRecord{
		DestinationCountry: req.Destination.Country,
		DestinationPostal:  req.Destination.PostalCode,
		PackingStrategy:    strategy.String(),
		PackageCount:       packageCount,
		ShipmentCurrency:   shipmentCurrency,
		QuoteCount:         len(result.Quotes),
	}

	for i, quote := range result.Quotes {
		if i == 0 || quote.Rate < record.CheapestRate {
			record.CheapestService = quote.ServiceName
			record.CheapestRate = quote.Rate
		}
	}
	if len(result.Errors) > 0 {
		record.ErrorText = result.Errors[0]
	}
	return record
}
