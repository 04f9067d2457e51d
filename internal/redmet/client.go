// Package redmet is a read-only client for the REDMET ICC weather web
// service. It exposes the two lookups the monitor needs: nearest stations to
// a coordinate and raw reading rows for a station over a time range.
package redmet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"heatindex-alert/internal/common"
	"heatindex-alert/internal/transport"
)

// queryTimeFormat is the layout of the fechaini/fechafin query parameters.
const queryTimeFormat = "2006-01-02 15:04"

// Client calls the REDMET web service with basic auth.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

// NewClient creates a REDMET client. The base URL is the service root
// without a trailing slash.
func NewClient(client *http.Client, baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client:   client,
		circuit:  transport.NewBreaker("redmet"),
	}
}

// NearestStations returns the stations closest to the coordinate, in the
// proximity order the API provides. An empty list is a valid response, not
// an error.
func (c *Client) NearestStations(ctx context.Context, lat, lon string) ([]Station, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/getLecturas/%s/%s", c.baseURL, url.PathEscape(lat), url.PathEscape(lon))
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.SetBasicAuth(c.username, c.password)
		return req, nil
	}

	resp, err := transport.Do(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("nearest stations lookup: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Estaciones []map[string]any `json:"estaciones"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nearest stations lookup: decode: %w", err)
	}

	stations := make([]Station, 0, len(payload.Estaciones))
	for _, row := range payload.Estaciones {
		stations = append(stations, Station{
			ID:       common.ToString(row["estacionid"]),
			Code:     common.ToString(row["codigo"]),
			Name:     common.ToString(row["finca"]),
			Distance: common.ToString(row["distancia"]),
		})
	}
	return stations, nil
}

// StationRecords returns the raw reading rows for one station between from
// and to. The API answers with either a map keyed by station id or a flat
// array; any other shape is treated as no data, since the upstream service
// is known to be inconsistent.
func (c *Client) StationRecords(ctx context.Context, stationID string, from, to time.Time) ([]Record, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("fechaini", from.Format(queryTimeFormat))
		values.Set("fechafin", to.Format(queryTimeFormat))
		values.Set("tipo", "fecha")
		values.Set("estacionids[]", stationID)

		u := fmt.Sprintf("%s/redmet/estaciones/lecturas?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.SetBasicAuth(c.username, c.password)
		return req, nil
	}

	resp, err := transport.Do(ctx, c.client, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("station %s records: %w", stationID, err)
	}
	defer resp.Body.Close()

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("station %s records: decode: %w", stationID, err)
	}

	return recordsFromPayload(raw, stationID), nil
}

// recordsFromPayload extracts reading rows from the two known response
// shapes. Unrecognized shapes yield an empty slice.
func recordsFromPayload(raw any, stationID string) []Record {
	switch t := raw.(type) {
	case map[string]any:
		rows, ok := t[stationID].([]any)
		if !ok {
			return nil
		}
		return toRecords(rows)
	case []any:
		return toRecords(t)
	default:
		return nil
	}
}

func toRecords(rows []any) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		if m, ok := r.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
