// Package digest renders fetched rows into a fixed-format bilingual text
// block. The digest is the single source of truth the answer model is
// allowed to quote numbers from, so the output must be deterministic:
// summarizing the same bundle twice yields byte-identical text, and no
// numeric token from the data is ever reformatted or "corrected".
package digest

import (
	"fmt"

	"airops/app/service/fetch"
	"airops/app/service/intent"
	"airops/app/util/textlang"

	"github.com/samber/do"
)

type Service struct{}

func New(_ *do.Injector) (*Service, error) {
	return &Service{}, nil
}

func (s *Service) Summarize(req intent.Request, bundle *fetch.Bundle, lang textlang.Lang) string {
	f := req.Filters

	switch req.Intent {
	case intent.EmployeeProfile:
		return fullProfile(f, bundle, lang)
	case intent.AbsenceSummary:
		return absenceSummary(f, bundle, lang)
	case intent.DelaySummary:
		return personalDelaySummary(f, bundle, lang)
	case intent.OvertimeSummary:
		return overtimeSummary(f, bundle, lang)
	case intent.SickLeaveSummary:
		return sickLeaveSummary(f, bundle, lang)
	case intent.OperationalEvents:
		return operationalEventSummary(f, bundle, lang)
	case intent.FlightDelay:
		return flightDelaySummary(f, bundle, lang)
	case intent.DepEmployeeDelay:
		return depDelaySummary(f, bundle, lang)
	case intent.ShiftReport:
		return shiftReportSummary(f, bundle, lang)
	case intent.AirlineStats:
		return airlineStatsSummary(bundle, lang)
	}

	if lang.IsArabic() {
		return "تم جلب البيانات لكن نوع الطلب غير معروف للتلخيص."
	}
	return "Data fetched from the database but the intent type is not recognized for summary."
}

// notAvailable is the literal placeholder substituted for any null or
// empty field.
func notAvailable(lang textlang.Lang) string {
	if lang.IsArabic() {
		return "غير متوفر"
	}
	return "not available"
}

func valueOr(value string, lang textlang.Lang) string {
	if value == "" {
		return notAvailable(lang)
	}
	return value
}

// scopeLabel resolves the entity a summary is narrowed to, with the
// uniform precedence employee id > department > everyone.
func scopeLabel(f intent.Filters, lang textlang.Lang) string {
	if lang.IsArabic() {
		switch {
		case f.EmployeeID != "":
			return "الموظف " + f.EmployeeID
		case f.Department != "":
			return "قسم " + f.Department
		}
		return "كل الموظفين"
	}

	switch {
	case f.EmployeeID != "":
		return "employee " + f.EmployeeID
	case f.Department != "":
		return "department " + f.Department
	}
	return "all employees"
}

// dateSpan returns the lexicographic min and max of the non-empty dates.
// String comparison is sufficient: the store keeps ISO 8601 dates.
func dateSpan(dates []string) (string, string) {
	var start, end string
	for _, d := range dates {
		if d == "" {
			continue
		}
		if start == "" || d < start {
			start = d
		}
		if end == "" || d > end {
			end = d
		}
	}
	return start, end
}

// truncationNote flags a source whose row count hit the read cap: the
// digest then presents counts as a sample instead of a total.
func truncationNote(bundle *fetch.Bundle, source string, rows int, lang textlang.Lang) string {
	if !bundle.Truncated[source] {
		return ""
	}
	if lang.IsArabic() {
		return fmt.Sprintf("\n- ملاحظة: تم فحص أول %d سجل فقط، الأرقام أعلاه عيّنة وليست إجمالياً نهائياً.", rows)
	}
	return fmt.Sprintf("\n- Note: only the first %d records were scanned; the figures above are a sample, not a final total.", rows)
}
