package errors

const (
	// engine err
	ErrResourceExhausted = 1101
	ErrInvalidState      = 1102

	// digest err
	ErrInvalidDigestLength = 1201
	ErrDecodeDigest        = 1202
	ErrDecodeState         = 1203
	ErrDigestMismatch      = 1204

	// host err
	ErrInvalidArgument = 1301
	ErrFileNotFound    = 1302
	ErrReadFile        = 1303
	ErrWriteFile       = 1304
	ErrConfig          = 1305

	// manifest err
	ErrStore         = 1401
	ErrStoreNotFound = 1402
	ErrStoreRecord   = 1403

	// other err
	ErrUnknown      = 1701
	ErrServiceState = 1702
)

var ErrCode = map[uint32]string{
	ErrResourceExhausted:   "Resource exhausted",
	ErrInvalidState:        "Invalid engine state",
	ErrInvalidDigestLength: "Invalid digest length",
	ErrDecodeDigest:        "Failed to decode digest",
	ErrDecodeState:         "Failed to decode hash state",
	ErrDigestMismatch:      "Digest mismatch",
	ErrInvalidArgument:     "Invalid argument",
	ErrFileNotFound:        "File does not exist",
	ErrReadFile:            "Failed to read file",
	ErrWriteFile:           "Failed to write file",
	ErrConfig:              "Invalid configuration",
	ErrStore:               "Error in manifest store",
	ErrStoreNotFound:       "No such record in manifest",
	ErrStoreRecord:         "Malformed manifest record",
	ErrUnknown:             "Unknown error",
	ErrServiceState:        "Invalid service state",
}
