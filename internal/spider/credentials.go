package spider

import (
	"fmt"
	"net/url"
)

const (
	usernameEnvironmentVariableConstant     = "BASIC_AUTH_USERNAME"
	passwordEnvironmentVariableConstant     = "BASIC_AUTH_PASSWORD"
	credentialURLParseErrorTemplateConstant = "unable to parse crawl URL %s: %w"
)

// Credentials carries optional basic-auth values for crawl URLs.
type Credentials struct {
	Username string
	Password string
}

// IsComplete reports whether both a username and a password are present.
func (credentials Credentials) IsComplete() bool {
	return len(credentials.Username) > 0 && len(credentials.Password) > 0
}

// IsPartial reports whether exactly one of username and password is present.
func (credentials Credentials) IsPartial() bool {
	return !credentials.IsComplete() && (len(credentials.Username) > 0 || len(credentials.Password) > 0)
}

// InjectCredentials embeds the credentials into the URL's userinfo section so
// the crawler authenticates without a separate credential channel.
func InjectCredentials(targetURL string, credentials Credentials) (string, error) {
	parsedURL, parseError := url.Parse(targetURL)
	if parseError != nil {
		return "", fmt.Errorf(credentialURLParseErrorTemplateConstant, targetURL, parseError)
	}

	parsedURL.User = url.UserPassword(credentials.Username, credentials.Password)
	return parsedURL.String(), nil
}
