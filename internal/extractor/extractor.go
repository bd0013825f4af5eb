// Package extractor turns raw search-hit text into typed opportunity
// fields. Everything here is a pure function over the lookup tables in
// tables.go: no I/O, no errors, best-effort partial results on any input.
package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/oppradar/oppradar/internal/domain/models"
)

type ExtractedFields struct {
	Type      models.OpportunityType
	Country   string
	Deadline  *time.Time
	AmountMin *float64
	AmountMax *float64
	Tags      []string
}

// Extract runs the full pipeline over one hit's text fields.
func Extract(title, description, rawContent string) ExtractedFields {
	fields := ExtractedFields{
		Type:     ClassifyType(title, description),
		Country:  ExtractCountry(title, description),
		Deadline: ExtractDeadline(title, description, rawContent),
	}
	fields.AmountMin, fields.AmountMax = ExtractAmounts(title, description, rawContent)
	fields.Tags = GenerateTags(title, description, fields.Type)
	return fields
}

// ClassifyType returns the first keyword group that matches; group order
// is the tie-break, so text mentioning both "scholarship" and "grant"
// classifies as scholarship.
func ClassifyType(title, description string) models.OpportunityType {
	content := strings.ToLower(title + " " + description)

	for _, group := range typeKeywordGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(content, keyword) {
				return group.result
			}
		}
	}
	return models.TypeOther
}

// ExtractCountry scans the alias table in order and returns the canonical
// name of the first alias found, or "Global" when nothing matches.
func ExtractCountry(title, description string) string {
	content := strings.ToLower(title + " " + description)

	for _, alias := range countryAliases {
		if alias.pattern.MatchString(content) {
			return alias.canonical
		}
	}
	return DefaultCountry
}

// ExtractDeadline tries the deadline pattern families in priority order
// and returns the first parseable date from the first family that
// matches. A matched token that fails to parse as a calendar date yields
// nothing rather than falling through to the next family's match.
func ExtractDeadline(title, description, rawContent string) *time.Time {
	content := title + " " + description + " " + rawContent

	for _, pattern := range deadlinePatterns {
		match := pattern.FindStringSubmatch(content)
		if match == nil {
			continue
		}
		return parseDateToken(match[1])
	}
	return nil
}

var dateSeparators = regexp.MustCompile(`[/\-]`)

// parseDateToken normalizes "M/D/Y", "M-D-Y" and "Y/M/D" tokens. Years
// below 2000 are shifted forward by 2000, so "03/15/09" means 2009.
func parseDateToken(token string) *time.Time {

	parts := dateSeparators.Split(token, -1)
	if len(parts) != 3 {
		return nil
	}

	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		numbers[i] = n
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		year, month, day = numbers[0], numbers[1], numbers[2]
	} else {
		month, day, year = numbers[0], numbers[1], numbers[2]
	}

	if year < 2000 {
		year += 2000
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Month() != time.Month(month) || date.Day() != day {
		return nil
	}
	return &date
}

// ExtractAmounts stops at the first pattern with at least one match.
// Range patterns set both bounds from their first match. Single-value
// patterns keep the running maximum seen across all matches, and only
// ever set the minimum.
func ExtractAmounts(title, description, rawContent string) (amountMin, amountMax *float64) {
	content := title + " " + description + " " + rawContent

	for _, p := range amountPatterns {
		matches := p.pattern.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			continue
		}

		if p.isRange {
			low := parseAmount(matches[0][1])
			high := parseAmount(matches[0][2])
			return &low, &high
		}

		max := parseAmount(matches[0][1])
		for _, match := range matches[1:] {
			if amount := parseAmount(match[1]); amount > max {
				max = amount
			}
		}
		return &max, nil
	}
	return nil, nil
}

func parseAmount(s string) float64 {
	amount, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return amount
}

// GenerateTags seeds the set with the opportunity type and adds every
// tag whose keyword list has at least one substring hit. The result is
// deduplicated and keeps table order.
func GenerateTags(title, description string, opportunityType models.OpportunityType) []string {
	content := strings.ToLower(title + " " + description)
	tags := []string{string(opportunityType)}

	for _, entry := range tagKeywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(content, keyword) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}

	seen := make(map[string]struct{}, len(tags))
	unique := tags[:0]
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		unique = append(unique, tag)
	}
	return unique
}

// StructuredData holds loosely-typed auxiliary signals kept for the
// record's opaque extracted_data field. Informational only, unvalidated.
type StructuredData struct {
	Dates   []string `json:"dates"`
	Amounts []string `json:"amounts"`
	Emails  []string `json:"emails"`
	Phones  []string `json:"phones"`
}

func ExtractStructured(text string) StructuredData {
	return StructuredData{
		Dates:   allMatches(structuredDatePattern, text),
		Amounts: allMatches(structuredAmountPattern, text),
		Emails:  allMatches(emailPattern, text),
		Phones:  allMatches(phonePattern, text),
	}
}

func allMatches(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
