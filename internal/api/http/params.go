package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Identity is asserted upstream by the API gateway; handlers trust these
// headers the same way metadata is trusted on internal RPC.
const (
	headerCustomerID = "X-Customer-ID"
	headerVendorID   = "X-Vendor-ID"
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func headerID(r *http.Request, name string) (int64, error) {
	raw := r.Header.Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("missing or invalid %s header", name)
	}
	return id, nil
}

// requesterID accepts either identity header; order reads are allowed
// for both the customer and the vendor side.
func requesterID(r *http.Request) (int64, error) {
	if id, err := headerID(r, headerCustomerID); err == nil {
		return id, nil
	}
	return headerID(r, headerVendorID)
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected RFC3339 timestamp", name)
	}
	return t, nil
}

func queryInt(r *http.Request, name string, fallback int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
