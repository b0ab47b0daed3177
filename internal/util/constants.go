package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// DuplicateCheckChunkSize caps how many course ids one duplicate re-check
// query covers, keeping IN lists bounded.
const DuplicateCheckChunkSize = 10
