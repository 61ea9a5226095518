package metrics

var (
	Registry = NopRegistryMetrics()
	Weigher  = NopWeigherMetrics()
	API      = NopAPIMetrics()
)
