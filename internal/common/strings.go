package common

// UnknownStr is the text of enum values without a name.
const UnknownStr = "unknown"
