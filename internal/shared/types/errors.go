package types

import "errors"

// Taxonomia de erros de uma execução do fetcher. Erros transientes são os
// únicos elegíveis a retry; todos os demais encerram a execução e o artefato
// anterior permanece intacto.
var (
	// ErrAuth indicates expired or invalid credentials (HTTP 401).
	ErrAuth = errors.New("authentication failed: expired or invalid credentials")
	// ErrPermission indicates the credentials lack content-owner access (HTTP 403).
	ErrPermission = errors.New("insufficient permission: monetary analytics require content-owner access")
	// ErrTransientAPI indicates a network, rate-limit or server-side error.
	ErrTransientAPI = errors.New("transient reporting API error")
	// ErrSchema indicates the API response did not match the expected shape.
	ErrSchema = errors.New("malformed reporting API response")
	// ErrArtifactWrite indicates the report could not be published.
	ErrArtifactWrite = errors.New("failed to publish report artifact")

	ErrMissingCredentials = errors.New("missing credentials. Set YT_CLIENT_ID, YT_CLIENT_SECRET and YT_REFRESH_TOKEN")
)
