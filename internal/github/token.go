package github

import "github.com/caarlos0/env/v11"

// credentials is the environment-backed credential set.
type credentials struct {
	Token string `env:"GITHUB_TOKEN"`
}

// ResolveToken picks the API token: an explicit value (flag or config file)
// wins, otherwise GITHUB_TOKEN from the environment. An empty result means
// no credential is available and fetching should degrade.
func ResolveToken(explicit string) string {
	if explicit != "" {
		return explicit
	}
	var creds credentials
	if err := env.Parse(&creds); err != nil {
		return ""
	}
	return creds.Token
}
