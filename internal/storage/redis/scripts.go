package redis

const (
	// prependRecordScript pushes a record and reports the new history length
	prependRecordScript = `
local history_key = KEYS[1]     -- {prefix}:history

local payload = ARGV[1]

-- Records leave the list only when the whole history is discarded
return redis.call('LPUSH', history_key, payload)
`
)
