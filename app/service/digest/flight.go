package digest

import (
	"fmt"
	"sort"
	"strings"

	"airops/app/service/fetch"
	"airops/app/service/intent"
	"airops/app/util/textlang"

	"github.com/elliotchance/pie/v2"
)

func flightDelaySummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	var target string
	switch {
	case f.FlightNumber != "" && f.Airline != "":
		if lang.IsArabic() {
			target = fmt.Sprintf("الرحلة %s لشركة %s", f.FlightNumber, f.Airline)
		} else {
			target = fmt.Sprintf("flight %s for airline %s", f.FlightNumber, f.Airline)
		}
	case f.FlightNumber != "":
		if lang.IsArabic() {
			target = "الرحلة " + f.FlightNumber
		} else {
			target = "flight " + f.FlightNumber
		}
	case f.Airline != "":
		if lang.IsArabic() {
			target = "شركة " + f.Airline
		} else {
			target = "airline " + f.Airline
		}
	default:
		if lang.IsArabic() {
			target = "جميع الرحلات"
		} else {
			target = "all flights"
		}
	}

	sgs := len(bundle.SGSRows)
	dep := len(bundle.DEPRows)

	if sgs == 0 && dep == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("ملخص تأخير الرحلات (%s):\nلا توجد سجلات تأخير مطابقة في سجلات الخدمات الأرضية أو مراقبة الحركة.", target)
		}
		return fmt.Sprintf("Flight delay summary (%s):\nNo matching delay records found in either ground-service or movement-control records.", target)
	}

	// The two record families cover the same flights from different
	// vantage points; both counts are reported, never merged.
	dates := make([]string, 0, sgs+dep)
	for _, r := range bundle.SGSRows {
		dates = append(dates, r.Date)
	}
	for _, r := range bundle.DEPRows {
		dates = append(dates, r.Date)
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص تأخير الرحلات (%s):\n- سجلات تأخير الخدمات الأرضية: %d\n- سجلات تأخير مراقبة الحركة: %d\n- إجمالي السجلات مجتمعة: %d\n- الفترة التي تغطيها السجلات: من %s إلى %s",
			target, sgs, dep, sgs+dep, valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Flight delay summary (%s):\n- Ground-service delay records: %d\n- Movement-control delay records: %d\n- Combined delay records: %d\n- Timeframe covered by records: from %s to %s",
			target, sgs, dep, sgs+dep, valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceSGSRows, sgs, lang) +
		truncationNote(bundle, fetch.SourceDEPRows, dep, lang)
}

// depDelaySummary has two shapes: a per-employee appearance count when
// an employee id is in scope, otherwise a ranked list of employees by
// appearance count. Ranking is stable: equal counts keep first-seen
// order so the same rows always render the same list.
func depDelaySummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.DEPRows

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد رحلات متأخرة في سجلات مراقبة الحركة لـ %s.", scope)
		}
		return fmt.Sprintf("No delayed flights found in movement-control records for %s.", scope)
	}

	if f.EmployeeID != "" {
		var text string
		if lang.IsArabic() {
			text = fmt.Sprintf("ملخص تأخيرات مراقبة الحركة لـ %s:\n- عدد الرحلات التي يظهر فيها هذا الموظف في سجلات التأخير: %d",
				scope, len(rows))
		} else {
			text = fmt.Sprintf("Movement-control delay summary for %s:\n- Number of flights where this employee appears in delay records: %d",
				scope, len(rows))
		}
		return text + truncationNote(bundle, fetch.SourceDEPRows, len(rows), lang)
	}

	ids, counts, names, conflicted := countByEmployee(rows)
	sort.SliceStable(ids, func(i, j int) bool {
		return counts[ids[i]] > counts[ids[j]]
	})

	var b strings.Builder
	if lang.IsArabic() {
		fmt.Fprintf(&b, "ملخص تأخيرات مراقبة الحركة لـ %s (%d سجلاً):", scope, len(rows))
	} else {
		fmt.Fprintf(&b, "Movement-control delay summary for %s (%d records):", scope, len(rows))
	}
	for _, id := range ids {
		name := names[id]
		if name == "" || conflicted[id] {
			name = notAvailable(lang)
		}
		if lang.IsArabic() {
			fmt.Fprintf(&b, "\n- الموظف %s (الرقم: %s): %d سجل", name, id, counts[id])
		} else {
			fmt.Fprintf(&b, "\n- Employee %s (ID: %s): %d records", name, id, counts[id])
		}
	}

	return b.String() + truncationNote(bundle, fetch.SourceDEPRows, len(rows), lang)
}

func shiftReportSummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	var scope string
	if f.Department != "" {
		if lang.IsArabic() {
			scope = "قسم " + f.Department
		} else {
			scope = "department " + f.Department
		}
	} else {
		if lang.IsArabic() {
			scope = "جميع الأقسام"
		} else {
			scope = "all departments"
		}
	}

	rows := bundle.ShiftReports
	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد تقارير مناوبات لـ %s.", scope)
		}
		return fmt.Sprintf("No shift reports for %s.", scope)
	}

	onDuty, noShow := 0, 0
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		onDuty += r.OnDuty
		noShow += r.NoShow
		dates = append(dates, r.Date)
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص تقارير المناوبات لـ %s (%d تقريراً):\n- إجمالي المتواجدين (On Duty) في هذه التقارير: %d فرداً\n- إجمالي حالات الغياب (No Show) في هذه التقارير: %d حالة\n- من %s إلى %s",
			scope, len(rows), onDuty, noShow, valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Shift report summary for %s (%d reports):\n- Total individuals recorded (On Duty) in these reports: %d individuals\n- Total absences recorded (No Show) in these reports: %d cases\n- From %s to %s",
			scope, len(rows), onDuty, noShow, valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceShiftReports, len(rows), lang)
}

// airlineStatsSummary ranks airlines by ground-service delay record
// count. Counts descend; ties break on airline name ascending so equal
// inputs always produce the same table.
func airlineStatsSummary(bundle *fetch.Bundle, lang textlang.Lang) string {
	rows := bundle.SGSRows
	if len(rows) == 0 {
		if lang.IsArabic() {
			return "لا توجد سجلات تأخير في بيانات الخدمات الأرضية."
		}
		return "No delay records in the ground-service data."
	}

	// Rows without an airline name cannot be attributed; they are left
	// out of the ranking rather than lumped into a fake bucket.
	counts := make(map[string]int)
	for _, r := range rows {
		if r.Airline == "" {
			continue
		}
		counts[r.Airline]++
	}
	if len(counts) == 0 {
		if lang.IsArabic() {
			return "لا توجد سجلات تأخير منسوبة إلى شركة طيران في بيانات الخدمات الأرضية."
		}
		return "No delay records attributed to an airline in the ground-service data."
	}

	names := pie.Keys(counts)
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	var b strings.Builder
	if lang.IsArabic() {
		fmt.Fprintf(&b, "إحصاءات تأخير شركات الطيران (%d سجلاً في الخدمات الأرضية):", len(rows))
		for _, name := range names {
			fmt.Fprintf(&b, "\n- %s: %d سجل تأخير", name, counts[name])
		}
		b.WriteString("\n\nتنبيه: هذه الأرقام هي عدد سجلات التأخير لكل شركة وليست نسبة الالتزام بالمواعيد، لأن إجمالي الرحلات المشغلة غير متوفر في هذه البيانات.")
	} else {
		fmt.Fprintf(&b, "Airline delay statistics (%d ground-service records):", len(rows))
		for _, name := range names {
			fmt.Fprintf(&b, "\n- %s: %d delay records", name, counts[name])
		}
		b.WriteString("\n\nDisclaimer: these figures are delay record counts per airline, not on-time performance rates, because the total number of operated flights is not present in this data.")
	}

	return b.String() + truncationNote(bundle, fetch.SourceSGSRows, len(rows), lang)
}
