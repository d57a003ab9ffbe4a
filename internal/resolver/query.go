package resolver

import (
	"strings"

	"github.com/sunnycho100/ocean-freight-optimizer/internal/errors"
	"github.com/sunnycho100/ocean-freight-optimizer/model"
)

// ParseDestination parses an operator-entered destination line of the form
// "CITY[, REGION], COUNTRY" into a DestinationQuery. The first segment is
// the city, the last is the country, and any middle segments form the
// region. Inputs with fewer than two comma-separated segments are a
// caller-side error and fail with an InvalidQueryFormatError rather than
// guessing a split.
func ParseDestination(input string) (model.DestinationQuery, error) {
	parts := strings.Split(input, ",")
	if len(parts) < 2 {
		return model.DestinationQuery{}, errors.NewInvalidQueryFormatError(input)
	}

	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, strings.TrimSpace(part))
	}

	city := segments[0]
	country := segments[len(segments)-1]
	if city == "" || country == "" {
		return model.DestinationQuery{}, errors.NewInvalidQueryFormatError(input)
	}

	region := ""
	if len(segments) > 2 {
		region = strings.Join(segments[1:len(segments)-1], ", ")
	}

	return model.DestinationQuery{
		City:    city,
		Region:  region,
		Country: country,
	}, nil
}
