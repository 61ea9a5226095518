package errors

var (
	ErrorQuorumNotFound             = NewError(100, "quorum does not exist")
	ErrorIndexOutOfRange            = NewError(101, "strategy index is out of range")
	ErrorLengthMismatch             = NewError(102, "input lengths do not match")
	ErrorInvalidIndexOrder          = NewError(103, "indices must be strictly descending without duplicates")
	ErrorWeightOverflow             = NewError(104, "weight exceeds the representable range")
	ErrorUnauthorized               = NewError(105, "caller is not authorized")
	ErrorInvalidOperation           = NewError(106, "invalid operation")
	ErrorInvalidMultiplier          = NewError(107, "invalid multiplier value")
	ErrorInvalidShares              = NewError(108, "invalid share balance")
	ErrorStorageCoreError           = NewError(150, "storage error")
	ErrorStorageRecordDoesNotExist  = NewError(151, "record does not exist in storage")
	ErrorStorageRecordAlreadyExists = NewError(152, "record already exists in storage")
)
