package metrics

const (
	Namespace         = "voteweigher"
	RegistrySubsystem = "registry"
	WeigherSubsystem  = "weigher"
	APISubsystem      = "api"
)
