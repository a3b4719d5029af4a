package matching

import (
	"regexp"
	"strconv"
	"strings"
)

var jobTypeAliases = map[string]JobType{
	"contract":         JobTypeContract,
	"contractor":       JobTypeContract,
	"contract_to_hire": JobTypeContract,
	"c2h":              JobTypeContract,
	"freelance":        JobTypeContract,
	"freelancer":       JobTypeContract,
	"temporary":        JobTypeContract,
	"temp":             JobTypeContract,
	"1099":             JobTypeContract,
	"full_time":        JobTypeFullTime,
	"fulltime":         JobTypeFullTime,
	"permanent":        JobTypeFullTime,
	"part_time":        JobTypePartTime,
	"parttime":         JobTypePartTime,
}

// ParseJobType maps free-text employment types ("Full-time", "Contract to
// hire", "freelance") onto a JobType.
func ParseJobType(s string) (JobType, bool) {
	key := strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '/'
	}), "_")
	t, ok := jobTypeAliases[key]
	return t, ok
}

var (
	durationRangeRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-|to)\s*(\d+(?:\.\d+)?)\s*(week|month|year)s?`)
	durationSingleRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(week|month|year)s?`)
)

const weeksPerMonth = 4.345

// ParseDurationBucket maps canonical bucket names and free text such as
// "3-6 months", "6 weeks", "1 year" or "long term" onto a DurationBucket.
// Ranges are bucketed by their upper bound.
func ParseDurationBucket(s string) (DurationBucket, bool) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return "", false
	}
	if b := DurationBucket(text); b.Valid() {
		return b, true
	}

	if m := durationRangeRe.FindStringSubmatch(text); m != nil {
		return bucketForMonths(toMonths(m[2], m[3]))
	}
	if m := durationSingleRe.FindStringSubmatch(text); m != nil {
		return bucketForMonths(toMonths(m[1], m[2]))
	}

	compact := strings.Join(strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == '-' }), " ")
	switch compact {
	case "short term":
		return DurationOneToThree, true
	case "long term", "ongoing":
		return DurationOverTwelve, true
	}
	return "", false
}

func toMonths(value, unit string) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return -1
	}
	switch unit {
	case "week":
		return v / weeksPerMonth
	case "year":
		return v * 12
	default:
		return v
	}
}

func bucketForMonths(m float64) (DurationBucket, bool) {
	switch {
	case m < 0:
		return "", false
	case m < 1:
		return DurationUnderOneMonth, true
	case m <= 3:
		return DurationOneToThree, true
	case m <= 6:
		return DurationThreeToSix, true
	case m <= 12:
		return DurationSixToTwelve, true
	default:
		return DurationOverTwelve, true
	}
}

// A bare "h" suffix only counts after "/" or a currency symbol; "40h/week"
// is working hours, not pay.
const (
	hourlyUnit   = `(?:/\s*(?:hr|hour|h)|(?:per|an|a)\s+(?:hr|hour)|hourly)\b`
	amountNumber = `(\d+(?:\.\d+)?)`
)

var (
	hourlyRangeRe = regexp.MustCompile(`([$€£]?)\s*` + amountNumber + `\s*(?:-|to)\s*[$€£]?\s*` + amountNumber +
		`\s*(?:` + hourlyUnit + `|(?:hr|hour)\b)`)
	hourlySingleRe = regexp.MustCompile(`(?:([$€£])\s*` + amountNumber + `\s*(?:` + hourlyUnit + `|(?:hr|hour|h)\b)` +
		`|` + amountNumber + `\s*` + hourlyUnit + `)`)
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// ParseHourlyRate extracts an hourly range from text like "$80-$120/hr" or
// "95 per hour". A single amount yields a zero-width range.
func ParseHourlyRate(s string) (RateRange, bool) {
	text := strings.ToLower(s)

	if m := hourlyRangeRe.FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.ParseFloat(m[2], 64)
		hi, err2 := strconv.ParseFloat(m[3], 64)
		if err1 != nil || err2 != nil {
			return RateRange{}, false
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return RateRange{Min: lo, Max: hi, Currency: currencySymbols[m[1]]}, hi > 0
	}
	if m := hourlySingleRe.FindStringSubmatch(text); m != nil {
		amount := m[2]
		if amount == "" {
			amount = m[3]
		}
		v, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return RateRange{}, false
		}
		return RateRange{Min: v, Max: v, Currency: currencySymbols[m[1]]}, v > 0
	}
	return RateRange{}, false
}
