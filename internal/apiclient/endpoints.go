package apiclient

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rshade/ghgdash/internal/emissions"
)

// FallbackCountryCode is used when a country name cannot be resolved.
const FallbackCountryCode = "WLD"

// Country is one entry of the /countries listing.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type countriesResponse struct {
	Countries []Country `json:"countries"`
}

// Countries lists the countries the API knows about.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	body, err := c.getJSON(ctx, EndpointCountries, nil)
	if err != nil {
		return nil, err
	}
	var resp countriesResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding countries: %w", err)
	}
	return resp.Countries, nil
}

// ResolveCountryCode returns the code for the country named name, or
// FallbackCountryCode when no entry matches exactly.
func ResolveCountryCode(countries []Country, name string) string {
	for _, c := range countries {
		if c.Name == name {
			return c.Code
		}
	}
	return FallbackCountryCode
}

// Statistics fetches per-gas statistics for code over r.
func (c *Client) Statistics(ctx context.Context, code string, r emissions.YearRange) (emissions.StatsByGas, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	body, err := c.getJSON(ctx, EndpointStatistics, rangeQuery(code, r))
	if err != nil {
		return nil, err
	}
	var stats emissions.StatsByGas
	if err = json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decoding statistics: %w", err)
	}
	return stats, nil
}

// GrowthByGas holds server-side growth per gas. A nil value means the
// server could not compute it.
type GrowthByGas map[emissions.GasKey]*float64

// Growth fetches server-computed growth for code over r. Each gas may be
// reported as a number or as a one-element array.
func (c *Client) Growth(ctx context.Context, code string, r emissions.YearRange) (GrowthByGas, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	body, err := c.getJSON(ctx, EndpointGrowth, rangeQuery(code, r))
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err = json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding growth: %w", err)
	}

	out := make(GrowthByGas, len(raw))
	for key, value := range raw {
		gas, keyErr := emissions.ParseGasKey(key)
		if keyErr != nil {
			continue
		}
		out[gas] = decodeGrowth(value)
	}
	return out, nil
}

func decodeGrowth(value json.RawMessage) *float64 {
	value = bytes.TrimSpace(value)
	var reading emissions.Reading
	if len(value) > 0 && value[0] == '[' {
		var list []emissions.Reading
		if json.Unmarshal(value, &list) != nil || len(list) == 0 {
			return nil
		}
		reading = list[0]
	} else if json.Unmarshal(value, &reading) != nil {
		return nil
	}
	if !reading.Valid {
		return nil
	}
	v := reading.Value
	return &v
}

// Dataset is everything the dashboard needs for one country and range.
type Dataset struct {
	Country string               `json:"country"`
	Code    string               `json:"country_code"`
	Range   emissions.YearRange  `json:"range"`
	Stats   emissions.StatsByGas `json:"statistics"`
}

// Load resolves countryName and fetches its statistics over r.
func (c *Client) Load(ctx context.Context, countryName string, r emissions.YearRange) (*Dataset, error) {
	countries, err := c.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}
	code := ResolveCountryCode(countries, countryName)

	stats, err := c.Statistics(ctx, code, r)
	if err != nil {
		return nil, fmt.Errorf("loading statistics for %s: %w", code, err)
	}
	return &Dataset{Country: countryName, Code: code, Range: r, Stats: stats}, nil
}
