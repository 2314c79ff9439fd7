package intent

import (
	"context"
	"regexp"
	"strings"
)

// PatternExtractor is the model-free strategy: a handful of regexes and
// keyword lists over the raw message. It is pure, never errors, and is
// both the offline fallback and the pre-analysis hint handed to the
// model-driven strategy.
type PatternExtractor struct{}

var _ Extractor = (*PatternExtractor)(nil)

var (
	employeeIDPattern = regexp.MustCompile(`(?i)(?:employee|emp\.?|الموظف|موظف|الرقم الوظيفي|رقمه الوظيفي)\D{0,12}(\d{6,8})(?:\D|$)`)
	flightPattern     = regexp.MustCompile(`(?:الرحلة|رحلة|FLIGHT)\s*#?\s*([A-Z]{2}\d{1,4}|\d{3,5})(?:\D|$)`)
	dateRangePattern  = regexp.MustCompile(`(?:من|from)\s*(\d{4}-\d{2}-\d{2})\s*(?:إلى|الى|to)\s*(\d{4}-\d{2}-\d{2})`)
)

// knownDepartments are the movement-control sections; longest names first
// so "FIC Saudia" wins before a bare "Saudia" airline match can fire.
var knownDepartments = []string{
	"FIC Saudia",
	"FIC Nas",
	"LC Saudia",
	"LC Foreign",
	"TCC",
}

var knownAirlines = []string{
	"Nesma Airlines",
	"Air Arabia",
	"Saudia",
	"Flynas",
	"Flyadeal",
}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

func (e *PatternExtractor) Extract(_ context.Context, message, _ string) Request {
	text := strings.TrimSpace(message)
	lower := strings.ToLower(text)

	filters := Filters{}

	if m := employeeIDPattern.FindStringSubmatch(text); m != nil {
		filters.EmployeeID = m[1]
	}
	if m := flightPattern.FindStringSubmatch(strings.ToUpper(text)); m != nil {
		filters.FlightNumber = m[1]
	}
	if m := dateRangePattern.FindStringSubmatch(text); m != nil {
		filters.StartDate = m[1]
		filters.EndDate = m[2]
	}

	remainder := text
	for _, dept := range knownDepartments {
		if containsFold(remainder, dept) {
			filters.Department = dept
			remainder = removeFold(remainder, dept)
			break
		}
	}
	for _, airline := range knownAirlines {
		if containsFold(remainder, airline) {
			filters.Airline = airline
			break
		}
	}

	return Request{
		Intent:  classifyByKeywords(text, lower, filters),
		Filters: filters,
	}
}

func classifyByKeywords(text, lower string, f Filters) Intent {
	has := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) || strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case has("overtime", "عمل إضافي", "عمل اضافي", "ساعات إضافية", "ساعات اضافية"):
		return OvertimeSummary
	case has("sick leave", "إجازة مرضية", "اجازة مرضية", "الإجازات المرضية"):
		return SickLeaveSummary
	case has("absence", "غياب", "الغياب"):
		return AbsenceSummary
	case has("operational event", "حدث تشغيلي", "أحداث تشغيلية", "الأحداث التشغيلية"):
		return OperationalEvents
	case has("shift report", "تقرير المناوبة", "تقارير المناوبات"):
		return ShiftReport
	case has("movement control", "dep delay", "مراقبة الحركة"):
		return DepEmployeeDelay
	case has("most delayed airline", "per airline", "أكثر شركة", "أكثر سبب للتأخير", "إحصائيات الشركات"):
		return AirlineStats
	case f.FlightNumber != "" && has("delay", "delayed", "تأخير", "تأخر", "سبب"):
		return FlightDelay
	case has("flight delay", "تأخير الرحلة", "تأخير الرحلات"):
		return FlightDelay
	case f.EmployeeID != "" && has("delay", "late", "تأخير", "تأخيرات"):
		return DelaySummary
	case f.Department != "" && has("delay", "تأخير", "تأخيرات"):
		return DelaySummary
	case has("profile", "who is employee", "من هو الموظف", "بطاقة الموظف", "ملف الموظف"):
		return EmployeeProfile
	case f.EmployeeID != "" && has("summary", "report", "ملخص", "تقرير"):
		return EmployeeProfile
	case f.EmployeeID != "":
		return EmployeeProfile
	}

	return FreeTalk
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func removeFold(haystack, needle string) string {
	idx := strings.Index(strings.ToLower(haystack), strings.ToLower(needle))
	if idx < 0 {
		return haystack
	}
	return haystack[:idx] + haystack[idx+len(needle):]
}
