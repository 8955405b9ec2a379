package entity

import "errors"

// OAuth scopes required to read monetary analytics data.
// yt-analytics-monetary.readonly exige acesso de content owner no canal.
var Scopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/yt-analytics.readonly",
	"https://www.googleapis.com/auth/yt-analytics-monetary.readonly",
}

// CredentialBundle carries the opaque authentication material for one fetch
// run. It is constructed from the process environment and passed explicitly
// into the fetch entry point; it must never be written to the artifact or to
// logs.
type CredentialBundle struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Validate verifica se o bundle tem todo o material necessário.
func (c CredentialBundle) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "" {
		return errors.New("incomplete credential bundle: client ID, client secret and refresh token are required")
	}
	return nil
}
