package middlewares

import (
	"net/http"
	"strings"
)

const (
	methodParam          = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

var overridable = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride lets HTML forms send PUT, PATCH and DELETE as POST. The
// method is read from the _method query parameter, the
// X-HTTP-Method-Override header or the _method form field, in that order.
// It wraps the router because routes are matched before gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); m != "" {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	candidates := []string{
		r.URL.Query().Get(methodParam),
		r.Header.Get(methodOverrideHeader),
	}
	if isURLEncodedForm(r) {
		candidates = append(candidates, r.PostFormValue(methodParam))
	}
	for _, m := range candidates {
		m = strings.ToUpper(strings.TrimSpace(m))
		if overridable[m] {
			return m
		}
	}
	return ""
}

func isURLEncodedForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
