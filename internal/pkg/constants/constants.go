package constants

import "net/http"

// CodedError carries an HTTP status code alongside the message so the api
// layer can render it without switching on sentinel values.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrEmptyPlanList       = NewCodedError(http.StatusBadRequest, "plan list is empty")
	ErrInvalidUsagePattern = NewCodedError(http.StatusBadRequest, "usage pattern must contain exactly 12 monthly values")
	ErrMissingTDURate      = NewCodedError(http.StatusBadRequest, "tdu rate record is missing")
	ErrUnknownTDUArea      = NewCodedError(http.StatusNotFound, "unknown tdu area")
	ErrUnknownZipCode      = NewCodedError(http.StatusNotFound, "zip code not found in tax tables")
	ErrDatasetNotLoaded    = NewCodedError(http.StatusServiceUnavailable, "plan dataset is not loaded")
	ErrBadRequest          = NewCodedError(http.StatusBadRequest, "bad request")
)

// Viper keys used by the cmd binaries.
const (
	ViperKeyListenAddr     = "listen_addr"
	ViperKeyDataDir        = "data_dir"
	ViperKeyPlansFile      = "plans_file"
	ViperKeyTDURatesFile   = "tdu_rates_file"
	ViperKeyLocalTaxesFile = "local_taxes_file"
	ViperKeyArchiveDir     = "archive_dir"
	ViperKeyFetchTimeout   = "fetch_timeout"
	ViperKeyCORSOrigins    = "cors_origins"
)
