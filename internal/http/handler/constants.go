package handler

const (
	jsonKeyError = "error"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidCredentials      = "invalid email or password"
	msgEmailAlreadyExists      = "email already exists"
	msgPasswordProcessFail     = "failed to process password"
	msgCreateAccountFail       = "failed to create account"
	msgGenerateTokenFail       = "failed to generate token"
	msgFileKeyRequired         = "file key is required"
	msgInvalidAuditLimit       = "limit must be between 1 and 200"
	msgInvalidAuditOffset      = "offset must be a non-negative integer"
)
