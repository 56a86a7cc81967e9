package models

import "encoding/json"

// DefaultIncidentWeight is applied when a source omits the weight field
const DefaultIncidentWeight = 1.0

// IncidentPoint represents a single geocoded incident record
type IncidentPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}

// UnmarshalJSON decodes {lat, lng, weight?}; a missing or null weight becomes 1.
func (p *IncidentPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat    float64  `json:"lat"`
		Lng    float64  `json:"lng"`
		Weight *float64 `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Lat = raw.Lat
	p.Lng = raw.Lng
	p.Weight = DefaultIncidentWeight
	if raw.Weight != nil {
		p.Weight = *raw.Weight
	}
	return nil
}
