package extractor

import (
	"regexp"

	"github.com/oppradar/oppradar/internal/domain/models"
)

// The tables below are ordered on purpose: classification and extraction
// walk them first to last and the first hit wins. Changing the order
// changes tie-break behaviour.

type typeKeywordGroup struct {
	result   models.OpportunityType
	keywords []string
}

var typeKeywordGroups = []typeKeywordGroup{
	{models.TypeScholarship, []string{"scholarship", "financial aid"}},
	{models.TypeFellowship, []string{"fellowship", "research program"}},
	{models.TypeGrant, []string{"grant", "funding"}},
	{models.TypeAccelerator, []string{"accelerator", "incubator"}},
	{models.TypeInternship, []string{"internship", "training program"}},
	{models.TypeCompetition, []string{"competition", "contest"}},
	{models.TypeAward, []string{"award", "recognition"}},
}

type countryAlias struct {
	canonical string
	pattern   *regexp.Regexp
}

// Aliases are matched on word boundaries so that "us" does not fire
// inside "business".
func newCountryAlias(alias, canonical string) countryAlias {
	return countryAlias{
		canonical: canonical,
		pattern:   regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`),
	}
}

var countryAliases = []countryAlias{
	newCountryAlias("united states", "United States"),
	newCountryAlias("usa", "United States"),
	newCountryAlias("us", "United States"),
	newCountryAlias("america", "United States"),
	newCountryAlias("canada", "Canada"),
	newCountryAlias("mexico", "Mexico"),
	newCountryAlias("brazil", "Brazil"),
	newCountryAlias("argentina", "Argentina"),
	newCountryAlias("united kingdom", "United Kingdom"),
	newCountryAlias("uk", "United Kingdom"),
	newCountryAlias("england", "England"),
	newCountryAlias("scotland", "Scotland"),
	newCountryAlias("germany", "Germany"),
	newCountryAlias("france", "France"),
	newCountryAlias("spain", "Spain"),
	newCountryAlias("italy", "Italy"),
	newCountryAlias("australia", "Australia"),
	newCountryAlias("new zealand", "New Zealand"),
	newCountryAlias("japan", "Japan"),
	newCountryAlias("china", "China"),
	newCountryAlias("india", "India"),
	newCountryAlias("south korea", "South Korea"),
	newCountryAlias("singapore", "Singapore"),
	newCountryAlias("global", "Global"),
}

const DefaultCountry = "Global"

const dateToken = `(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}|\d{4}[/\-]\d{1,2}[/\-]\d{1,2})`

// Deadline families, most specific first. The first family that matches
// anywhere in the text decides; within a family the first match wins.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:deadline|due|closes?|ends?)\s*:?\s*` + dateToken),
	regexp.MustCompile(`(?i)(?:application|apply by)\s*:?\s*` + dateToken),
	regexp.MustCompile(dateToken),
}

const amountToken = `\$([\d,]+(?:\.\d{2})?)`

type amountPattern struct {
	pattern *regexp.Regexp
	isRange bool
}

// Ranges before single values: "$1,000 - $5,000" must win over the bare
// "$1,000" it contains.
var amountPatterns = []amountPattern{
	{regexp.MustCompile(amountToken + `\s*-\s*` + amountToken), true},
	{regexp.MustCompile(`(?i)` + amountToken + `\s*to\s*` + amountToken), true},
	{regexp.MustCompile(`(?i)up to ` + amountToken), false},
	{regexp.MustCompile(amountToken), false},
}

type tagKeywords struct {
	tag      string
	keywords []string
}

var tagKeywordTable = []tagKeywords{
	{"women", []string{"women", "female", "girls"}},
	{"minority", []string{"minority", "diverse", "underrepresented"}},
	{"stem", []string{"stem", "science", "technology", "engineering", "mathematics"}},
	{"research", []string{"research", "study", "academic"}},
	{"entrepreneurship", []string{"entrepreneur", "startup", "business"}},
	{"international", []string{"international", "global", "worldwide"}},
	{"graduate", []string{"graduate", "masters", "phd", "doctoral"}},
	{"undergraduate", []string{"undergraduate", "bachelor", "college"}},
	{"merit", []string{"merit", "academic", "gpa"}},
	{"need", []string{"need-based", "financial need", "low income"}},
}

var (
	structuredDatePattern   = regexp.MustCompile(dateToken)
	structuredAmountPattern = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?|\d+,\d+|\d+\.\d{2}`)
	emailPattern            = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern            = regexp.MustCompile(`\(?[\d\s\-()]{10,}`)
)
