package model

type ServiceCode string

const (
	ServiceInspection     ServiceCode = "A"
	ServiceOilFilter      ServiceCode = "B"
	ServiceCoolant        ServiceCode = "C"
	ServiceFluidAnalysis  ServiceCode = "D"
	ServiceLoadBank       ServiceCode = "E"
	ServiceTransferSwitch ServiceCode = "F"
	ServiceCustom         ServiceCode = "CUSTOM"
)

type ServiceDefinition struct {
	Code             ServiceCode
	Name             string
	DefaultFrequency int
	WeatherSensitive bool
}

// ServiceCatalog lists the maintenance services the calculator quotes.
// Load bank testing is the only weather-sensitive service: running a
// generator at full load in cold or wet months degrades the test.
var ServiceCatalog = []ServiceDefinition{
	{Code: ServiceInspection, Name: "Comprehensive Inspection", DefaultFrequency: 4},
	{Code: ServiceOilFilter, Name: "Oil & Filter Service", DefaultFrequency: 1},
	{Code: ServiceCoolant, Name: "Coolant Service", DefaultFrequency: 1},
	{Code: ServiceFluidAnalysis, Name: "Fluid Analysis", DefaultFrequency: 1},
	{Code: ServiceLoadBank, Name: "Load Bank Testing", DefaultFrequency: 1, WeatherSensitive: true},
	{Code: ServiceTransferSwitch, Name: "Transfer Switch Service", DefaultFrequency: 1},
	{Code: ServiceCustom, Name: "Custom Service", DefaultFrequency: 1},
}

func LookupService(code ServiceCode) (ServiceDefinition, bool) {
	for _, def := range ServiceCatalog {
		if def.Code == code {
			return def, true
		}
	}
	return ServiceDefinition{}, false
}

func (c ServiceCode) WeatherSensitive() bool {
	def, ok := LookupService(c)
	return ok && def.WeatherSensitive
}

// NormalizeFrequency coerces a contracted annual frequency into the
// supported set {1, 2, 4}. Anything else is treated as annual.
func NormalizeFrequency(freq int) int {
	switch freq {
	case 1, 2, 4:
		return freq
	default:
		return 1
	}
}
