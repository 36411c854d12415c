package handlers

import "net/http"

// getParam reads a route parameter. pat stores them in the query with a
// leading colon; the net/http mux exposes them through PathValue.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	return r.PathValue(name)
}
