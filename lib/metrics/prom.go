package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Registry = PromRegistryMetrics()
	Weigher = PromWeigherMetrics()
	API = PromAPIMetrics()
}
