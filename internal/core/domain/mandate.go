package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker used on legislator pages for an ongoing mandate period.
const presentMarker = "prezent"

// DeputyMandate is one row of the legislator list: a deputy together
// with a mandate period. EndYear is nil when the mandate is ongoing.
type DeputyMandate struct {
	OrderNum    int
	Name        string
	StartYear   int
	EndYear     *int
	MandateType string
	ProfileLink string
}

// ParseDeputyRow parses the cells of one legislator table row, e.g.
// ["1", "George Pruteanu", "2004-prezent", "deputat"]. A trailing cell,
// when present, is the link to the mandate page.
func ParseDeputyRow(cells []string) (DeputyMandate, error) {
	if len(cells) < 4 {
		return DeputyMandate{}, fmt.Errorf("%w: expected at least 4 cells, got %d", ErrInvalidInput, len(cells))
	}
	orderNum, err := strconv.Atoi(strings.TrimSpace(cells[0]))
	if err != nil {
		return DeputyMandate{}, fmt.Errorf("parse order number %q: %w", cells[0], err)
	}
	start, end, err := ParseMandatePeriod(cells[2])
	if err != nil {
		return DeputyMandate{}, err
	}
	m := DeputyMandate{
		OrderNum:    orderNum,
		Name:        strings.TrimSpace(cells[1]),
		StartYear:   start,
		EndYear:     end,
		MandateType: strings.TrimSpace(cells[3]),
	}
	if len(cells) > 4 {
		m.ProfileLink = strings.TrimSpace(cells[4])
	}
	return m, nil
}

// ParseMandatePeriod parses a period of the form "2004-2008" or
// "2004-prezent". The end year is nil for ongoing mandates.
func ParseMandatePeriod(period string) (startYear int, endYear *int, err error) {
	parts := strings.SplitN(strings.TrimSpace(period), "-", 2)
	if len(parts) != 2 {
		return 0, nil, fmt.Errorf("%w: malformed mandate period %q", ErrInvalidInput, period)
	}
	startYear, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, nil, fmt.Errorf("parse mandate start year %q: %w", parts[0], err)
	}
	endPart := strings.ToLower(strings.TrimSpace(parts[1]))
	if endPart == presentMarker {
		return startYear, nil, nil
	}
	end, err := strconv.Atoi(endPart)
	if err != nil {
		return 0, nil, fmt.Errorf("parse mandate end year %q: %w", parts[1], err)
	}
	return startYear, &end, nil
}
