package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"fedex-shipping-service/awsutil"
	"fedex-shipping-service/models"
	"fedex-shipping-service/packing"
	"fedex-shipping-service/providers"
	"fedex-shipping-service/units"
)

// Config holds all configuration for the shipping service.
type Config struct {
	Port             string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string

	// FedEx endpoint and credentials
	FedexURL           string
	FedexKey           string
	FedexPassword      string
	FedexAccountNumber string
	FedexMeterNumber   string

	// Merchant rating preferences
	DropoffType              string
	PackingType              string
	PackingPackageVolume     int
	AdditionalHandlingCharge float64
	ApplyDiscounts           bool
	PassDimensions           bool
	UseResidentialRates      bool
	CarrierServicesOffered   string // colon-delimited service codes

	// Store measure and currency settings
	WeightUnit      string
	DimensionUnit   string
	PrimaryCurrency string
	CurrencyRates   map[string]float64 // units of primary per foreign unit

	ShippingSNSTopicARN string

	// Warehouse / origin address defaults
	OriginStreet1    string
	OriginCity       string
	OriginState      string
	OriginPostalCode string
	OriginCountry    string
}

// OriginAddress builds an Address struct from origin config values.
func (c *Config) OriginAddress() models.Address {
	return models.Address{
		Street1:    c.OriginStreet1,
		City:       c.OriginCity,
		State:      c.OriginState,
		PostalCode: c.OriginPostalCode,
		Country:    c.OriginCountry,
	}
}

// CarrierConfig builds the carrier configuration surface from config values.
func (c *Config) CarrierConfig() providers.Config {
	return providers.Config{
		URL:                      c.FedexURL,
		Key:                      c.FedexKey,
		Password:                 c.FedexPassword,
		AccountNumber:            c.FedexAccountNumber,
		MeterNumber:              c.FedexMeterNumber,
		DropoffType:              providers.ParseDropoffType(c.DropoffType),
		UseResidentialRates:      c.UseResidentialRates,
		ApplyDiscounts:           c.ApplyDiscounts,
		AdditionalHandlingCharge: c.AdditionalHandlingCharge,
		CarrierServicesOffered:   c.CarrierServicesOffered,
		PassDimensions:           c.PassDimensions,
	}
}

// PackingStrategy returns the configured packing strategy.
func (c *Config) PackingStrategy() packing.Strategy {
	return packing.ParseStrategy(c.PackingType)
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8092"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),

		FedexURL:           getEnv("FEDEX_URL", "https://wsbeta.fedex.com:443/web-services"),
		FedexKey:           os.Getenv("FEDEX_KEY"),
		FedexPassword:      os.Getenv("FEDEX_PASSWORD"),
		FedexAccountNumber: os.Getenv("FEDEX_ACCOUNT_NUMBER"),
		FedexMeterNumber:   os.Getenv("FEDEX_METER_NUMBER"),

		DropoffType:              getEnv("FEDEX_DROPOFF_TYPE", "business_service_center"),
		PackingType:              getEnv("FEDEX_PACKING_TYPE", "dimensions"),
		PackingPackageVolume:     getEnvInt("FEDEX_PACKING_PACKAGE_VOLUME", packing.DefaultPackageVolume),
		AdditionalHandlingCharge: getEnvFloat("FEDEX_ADDITIONAL_HANDLING_CHARGE", 0),
		ApplyDiscounts:           getEnvBool("FEDEX_APPLY_DISCOUNTS", false),
		PassDimensions:           getEnvBool("FEDEX_PASS_DIMENSIONS", true),
		UseResidentialRates:      getEnvBool("FEDEX_USE_RESIDENTIAL_RATES", false),
		CarrierServicesOffered:   os.Getenv("FEDEX_CARRIER_SERVICES_OFFERED"),

		WeightUnit:      getEnv("STORE_WEIGHT_UNIT", string(units.Pound)),
		DimensionUnit:   getEnv("STORE_DIMENSION_UNIT", string(units.Inch)),
		PrimaryCurrency: getEnv("STORE_PRIMARY_CURRENCY", "USD"),

		ShippingSNSTopicARN: os.Getenv("SHIPPING_SNS_TOPIC_ARN"),

		// Origin (warehouse) address
		OriginStreet1:    getEnv("ORIGIN_STREET1", "123 Warehouse Blvd"),
		OriginCity:       getEnv("ORIGIN_CITY", "San Francisco"),
		OriginState:      getEnv("ORIGIN_STATE", "CA"),
		OriginPostalCode: getEnv("ORIGIN_POSTAL_CODE", "94105"),
		OriginCountry:    getEnv("ORIGIN_COUNTRY", "US"),
	}

	if rates := os.Getenv("CURRENCY_RATES"); rates != "" {
		if err := json.Unmarshal([]byte(rates), &cfg.CurrencyRates); err != nil {
			return nil, fmt.Errorf("invalid CURRENCY_RATES: %w", err)
		}
	}

	// Override credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awsutil.LoadAWSConfig(context.Background()); err == nil {
			sm := awsutil.NewSecretsClient(awsCfg)
			if credsJSON, err := sm.GetSecret(context.Background(), "shipping/FEDEX_CREDENTIALS"); err == nil && credsJSON != "" {
				var m map[string]string
				if err := json.Unmarshal([]byte(credsJSON), &m); err == nil {
					if v, ok := m["FEDEX_KEY"]; ok && v != "" {
						cfg.FedexKey = v
					}
					if v, ok := m["FEDEX_PASSWORD"]; ok && v != "" {
						cfg.FedexPassword = v
					}
					if v, ok := m["FEDEX_ACCOUNT_NUMBER"]; ok && v != "" {
						cfg.FedexAccountNumber = v
					}
					if v, ok := m["FEDEX_METER_NUMBER"]; ok && v != "" {
						cfg.FedexMeterNumber = v
					}
				}
			}
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.FedexKey == "" || cfg.FedexPassword == "" || cfg.FedexAccountNumber == "" {
		return nil, fmt.Errorf("fedex credentials incomplete")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
