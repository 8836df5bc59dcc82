package providers

// serviceNames maps the carrier's internal service codes to display names.
// Static and read-only; constructed once at process start.
var serviceNames = map[string]string{
	"EUROPE_FIRST_INTERNATIONAL_PRIORITY": "FedEx Europe First International Priority",
	"FEDEX_1_DAY_FREIGHT":                 "FedEx 1Day Freight",
	"FEDEX_2_DAY":                         "FedEx 2Day",
	"FEDEX_2_DAY_FREIGHT":                 "FedEx 2Day Freight",
	"FEDEX_3_DAY_FREIGHT":                 "FedEx 3Day Freight",
	"FEDEX_EXPRESS_SAVER":                 "FedEx Express Saver",
	"FEDEX_GROUND":                        "FedEx Ground",
	"FIRST_OVERNIGHT":                     "FedEx First Overnight",
	"GROUND_HOME_DELIVERY":                "FedEx Ground Home Delivery",
	"INTERNATIONAL_DISTRIBUTION_FREIGHT":  "FedEx International Distribution Freight",
	"INTERNATIONAL_ECONOMY":               "FedEx International Economy",
	"INTERNATIONAL_ECONOMY_DISTRIBUTION":  "FedEx International Economy Distribution",
	"INTERNATIONAL_ECONOMY_FREIGHT":       "FedEx International Economy Freight",
	"INTERNATIONAL_FIRST":                 "FedEx International First",
	"INTERNATIONAL_PRIORITY":              "FedEx International Priority",
	"INTERNATIONAL_PRIORITY_FREIGHT":      "FedEx International Priority Freight",
	"PRIORITY_OVERNIGHT":                  "FedEx Priority Overnight",
	"SMART_POST":                          "FedEx Smart Post",
	"STANDARD_OVERNIGHT":                  "FedEx Standard Overnight",
	"FEDEX_FREIGHT":                       "FedEx Freight",
	"FEDEX_NATIONAL_FREIGHT":              "FedEx National Freight",
}

// serviceCodes is the reverse lookup, display name to service code.
var serviceCodes = func() map[string]string {
	m := make(map[string]string, len(serviceNames))
	for code, name := range serviceNames {
		m[name] = code
	}
	return m
}()

// ServiceName returns the display name for a carrier service code, or
// "UNKNOWN" for an unrecognized code.
func ServiceName(serviceCode string) string {
	if name, ok := serviceNames[serviceCode]; ok {
		return name
	}
	return "UNKNOWN"
}

// ServiceCode returns the carrier service code for a display name, or
// "UNKNOWN" for an unrecognized name.
func ServiceCode(serviceName string) string {
	if code, ok := serviceCodes[serviceName]; ok {
		return code
	}
	return "UNKNOWN"
}
