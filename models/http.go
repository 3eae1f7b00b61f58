package models

// Response is the envelope the backend wraps most payloads in:
//
//	{"code": 200, "message": "...", "data": {...}}
//
// Code mirrors the HTTP status for most endpoints, but the create endpoint
// reports its outcome only through Code.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorResponse is the best-effort shape of a backend error body. Some
// backend handlers put the text under "error" instead of "message".
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// TokenData is the data part of a login response.
type TokenData struct {
	Token string `json:"token"`
}

// RegisterResponse is the register response. Unlike login, the token is
// returned at the top level of the body.
type RegisterResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SecretsList is the data part of a list response.
type SecretsList struct {
	Secrets []Secret `json:"secrets"`
}

// SecretData is the data part of an update response.
type SecretData struct {
	Secret Secret `json:"secret"`
}

// GeneratePasswordRequest is the body of a password generation call.
type GeneratePasswordRequest struct {
	Length               int  `json:"length"`
	IncludeSpecialSymbol bool `json:"include_special_symbol"`
}

// GeneratedPassword is the data part of a password generation response.
type GeneratedPassword struct {
	Password string `json:"password"`
}
