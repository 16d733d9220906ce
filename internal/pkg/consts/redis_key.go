package consts

const (
	FortuneDailyKey = "fortune:daily:"
	MatchDailyKey   = "match:daily:"
)

const (
	FortuneBatchLock = "lock:fortune:batch:"
	MatchBatchLock   = "lock:match:batch:"
)
