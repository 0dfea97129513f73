package score

import "strings"

// Resolver maps a GitHub login to the model identity it posts for. Logins
// that do not resolve are treated as human reviewers and ignored by the
// scorer. Callers supply the resolver, so identity policy lives entirely
// outside the scoring logic.
type Resolver interface {
	Resolve(login string) (model string, ok bool)
}

// MapResolver resolves logins through an explicit login-to-model mapping.
// Lookups are case-insensitive on the login.
type MapResolver struct {
	mapping map[string]string
}

// NewMapResolver builds a resolver from login -> model name.
func NewMapResolver(mapping map[string]string) *MapResolver {
	m := make(map[string]string, len(mapping))
	for login, model := range mapping {
		m[strings.ToLower(login)] = model
	}
	return &MapResolver{mapping: m}
}

func (r *MapResolver) Resolve(login string) (string, bool) {
	model, ok := r.mapping[strings.ToLower(login)]
	return model, ok
}

// DefaultMarkers flag the common automation accounts.
var DefaultMarkers = []string{"github-actions", "bot"}

// MarkerResolver resolves any login containing one of the markers, using
// the login itself as the model name. It backs installations that have not
// configured an explicit reviewer mapping.
type MarkerResolver struct {
	markers []string
}

// NewMarkerResolver builds a marker resolver; with no arguments it uses
// DefaultMarkers.
func NewMarkerResolver(markers ...string) *MarkerResolver {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}
	return &MarkerResolver{markers: lowered}
}

func (r *MarkerResolver) Resolve(login string) (string, bool) {
	lower := strings.ToLower(login)
	for _, m := range r.markers {
		if strings.Contains(lower, m) {
			return login, true
		}
	}
	return "", false
}

// ChainResolver tries each resolver in order and returns the first hit.
type ChainResolver []Resolver

func (r ChainResolver) Resolve(login string) (string, bool) {
	for _, rr := range r {
		if model, ok := rr.Resolve(login); ok {
			return model, true
		}
	}
	return "", false
}
