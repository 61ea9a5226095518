package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLQuorums          = APIPrefix + APIVersionV1 + "/quorums"
	URLQuorum           = APIPrefix + APIVersionV1 + "/quorums/{id}"
	URLQuorumStrategies = APIPrefix + APIVersionV1 + "/quorums/{id}/strategies"
	URLQuorumStrategy   = APIPrefix + APIVersionV1 + "/quorums/{id}/strategies/{index}"
	URLQuorumWeight     = APIPrefix + APIVersionV1 + "/quorums/{id}/weight/{operator}"
)
