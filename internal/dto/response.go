package dto

// Envelope is the uniform response body: code 0 and empty errMsg on
// success, code equal to the HTTP status on failure.
type Envelope struct {
	Code   int         `json:"code"`
	ErrMsg string      `json:"errMsg"`
	Data   interface{} `json:"data"`
}

// Wrap builds the envelope for a payload about to be written with the given
// HTTP status. A payload that is already an Envelope is returned unchanged,
// so wrapping twice never nests.
func Wrap(status int, data interface{}) Envelope {
	switch v := data.(type) {
	case Envelope:
		return v
	case *Envelope:
		return *v
	}

	if status < 400 {
		return Envelope{Code: 0, ErrMsg: "", Data: data}
	}

	return Envelope{Code: status, ErrMsg: errMsgOf(data), Data: data}
}

func errMsgOf(data interface{}) string {
	switch v := data.(type) {
	case map[string]interface{}:
		if s, ok := v["detail"].(string); ok && s != "" {
			return s
		}
	case error:
		if v != nil && v.Error() != "" {
			return v.Error()
		}
	case string:
		if v != "" {
			return v
		}
	}
	return "error"
}

// Detail is the error payload shape handlers put into failed responses.
func Detail(msg string) map[string]interface{} {
	return map[string]interface{}{"detail": msg}
}
