package digest

import (
	"fmt"
	"strings"

	"airops/app/service/fetch"
	"airops/app/service/intent"
	"airops/app/service/tables"
	"airops/app/util/textlang"
)

// fullProfile stitches every employee-linked section into one block:
// master record, absences, personal delays, sick leaves, overtime,
// movement-control delays, operational events. Empty sections still
// contribute their "no records" sentence so the model cannot invent
// data for a section that was actually queried.
func fullProfile(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	sections := []string{
		profileSection(f, bundle, lang),
		absenceSummary(f, bundle, lang),
		personalDelaySummary(f, bundle, lang),
		sickLeaveSummary(f, bundle, lang),
		overtimeSummary(f, bundle, lang),
		movementDelaySection(f, bundle, lang),
		operationalEventSummary(f, bundle, lang),
	}
	return strings.Join(sections, "\n\n")
}

func profileSection(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)

	if len(bundle.Profile) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا يوجد سجل أساسي للموظف (%s).", scope)
		}
		return fmt.Sprintf("No master record found for %s.", scope)
	}

	p := bundle.Profile[0]
	if lang.IsArabic() {
		return strings.Join([]string{
			"بيانات الموظف الأساسية:",
			"- الرقم الوظيفي: " + valueOr(p.EmployeeID, lang),
			"- الاسم: " + valueOr(p.Name, lang),
			"- الجنس: " + valueOr(p.Gender, lang),
			"- الجنسية: " + valueOr(p.Nationality, lang),
			"- تاريخ التعيين: " + valueOr(p.HiringDate, lang),
			"- المسمى الوظيفي: " + valueOr(p.JobTitle, lang),
			"- الدور الفعلي: " + valueOr(p.ActualRole, lang),
			"- الدرجة: " + valueOr(p.Grade, lang),
			"- القسم: " + valueOr(p.Department, lang),
			"- القسم السابق: " + valueOr(p.PreviousDepartment, lang),
			"- القسم الحالي: " + valueOr(p.CurrentDepartment, lang),
			"- نوع الإجراء الوظيفي: " + valueOr(p.ActionType, lang),
			"- تاريخ سريان الإجراء: " + valueOr(p.ActionDate, lang),
			"- سبب ترك العمل: " + valueOr(p.ExitReason, lang),
		}, "\n")
	}

	return strings.Join([]string{
		"Employee master record:",
		"- Employee ID: " + valueOr(p.EmployeeID, lang),
		"- Name: " + valueOr(p.Name, lang),
		"- Gender: " + valueOr(p.Gender, lang),
		"- Nationality: " + valueOr(p.Nationality, lang),
		"- Hiring date: " + valueOr(p.HiringDate, lang),
		"- Job title: " + valueOr(p.JobTitle, lang),
		"- Actual role: " + valueOr(p.ActualRole, lang),
		"- Grade: " + valueOr(p.Grade, lang),
		"- Department: " + valueOr(p.Department, lang),
		"- Previous department: " + valueOr(p.PreviousDepartment, lang),
		"- Current department: " + valueOr(p.CurrentDepartment, lang),
		"- Employment action type: " + valueOr(p.ActionType, lang),
		"- Action effective date: " + valueOr(p.ActionDate, lang),
		"- Exit reason: " + valueOr(p.ExitReason, lang),
	}, "\n")
}

func absenceSummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.Absence

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد سجلات غياب لـ %s.", scope)
		}
		return fmt.Sprintf("No absence records for %s.", scope)
	}

	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص الغياب لـ %s:\n- إجمالي السجلات: %d\n- من %s إلى %s",
			scope, len(rows), valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Absence summary for %s:\n- Total records: %d\n- From %s to %s",
			scope, len(rows), valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceAbsence, len(rows), lang)
}

func personalDelaySummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.Delays

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد سجلات تأخير شخصي لـ %s.", scope)
		}
		return fmt.Sprintf("No personal delay records for %s.", scope)
	}

	totalMinutes := 0
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		totalMinutes += r.DelayMinutes
		dates = append(dates, r.Date)
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص التأخير الشخصي لـ %s:\n- إجمالي سجلات التأخير: %d\n- إجمالي دقائق التأخير: %d دقيقة\n- من %s إلى %s",
			scope, len(rows), totalMinutes, valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Personal delay summary for %s:\n- Total delay records: %d\n- Total delay minutes: %d minutes\n- From %s to %s",
			scope, len(rows), totalMinutes, valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceDelays, len(rows), lang)
}

// overtimeDetailCap bounds the per-record detail lines so one prolific
// employee cannot blow the digest past the model's context.
const overtimeDetailCap = 50

func overtimeSummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.Overtime

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد سجلات عمل إضافي لـ %s.", scope)
		}
		return fmt.Sprintf("No overtime records for %s.", scope)
	}

	totalHours := 0.0
	latest := ""
	for _, r := range rows {
		if r.HasHours {
			totalHours += r.TotalHours
		}
		if r.AssignmentDate > latest {
			latest = r.AssignmentDate
		}
	}

	var b strings.Builder
	if lang.IsArabic() {
		fmt.Fprintf(&b, "ملخص العمل الإضافي لـ %s:\n", scope)
		fmt.Fprintf(&b, "- إجمالي سجلات العمل الإضافي: %d\n", len(rows))
		fmt.Fprintf(&b, "- إجمالي ساعات العمل الإضافي المسجلة: %.1f ساعة\n", totalHours)
		fmt.Fprintf(&b, "- أحدث تاريخ تكليف: %s\n", valueOr(latest, lang))
		b.WriteString("\nتفاصيل السجلات:")
	} else {
		fmt.Fprintf(&b, "Overtime summary for %s:\n", scope)
		fmt.Fprintf(&b, "- Total overtime records: %d\n", len(rows))
		fmt.Fprintf(&b, "- Total recorded overtime hours: %.1f hours\n", totalHours)
		fmt.Fprintf(&b, "- Most recent assignment date: %s\n", valueOr(latest, lang))
		b.WriteString("\nRecord details:")
	}

	shown := rows
	if len(shown) > overtimeDetailCap {
		shown = shown[:overtimeDetailCap]
	}
	for _, r := range shown {
		hours := notAvailable(lang)
		if r.HasHours {
			hours = fmt.Sprintf("%.1f", r.TotalHours)
		}
		if lang.IsArabic() {
			fmt.Fprintf(&b, "\n- التاريخ: %s | النوع: %s | الأيام: %s | الساعات: %s | السبب: %s | القسم: %s | مدير المناوبة المعتمد: %s (الرقم: %s)",
				valueOr(r.AssignmentDate, lang), valueOr(r.AssignmentType, lang),
				valueOr(r.AssignmentDays, lang), hours,
				valueOr(r.AssignmentReason, lang), valueOr(r.Department, lang),
				valueOr(r.DutyManagerName, lang), valueOr(r.DutyManagerID, lang))
		} else {
			fmt.Fprintf(&b, "\n- Date: %s | Type: %s | Days: %s | Hours: %s | Reason: %s | Department: %s | Approved duty manager: %s (ID: %s)",
				valueOr(r.AssignmentDate, lang), valueOr(r.AssignmentType, lang),
				valueOr(r.AssignmentDays, lang), hours,
				valueOr(r.AssignmentReason, lang), valueOr(r.Department, lang),
				valueOr(r.DutyManagerName, lang), valueOr(r.DutyManagerID, lang))
		}
	}
	if len(rows) > overtimeDetailCap {
		if lang.IsArabic() {
			fmt.Fprintf(&b, "\n- (%d سجلاً إضافياً غير معروض)", len(rows)-overtimeDetailCap)
		} else {
			fmt.Fprintf(&b, "\n- (%d more records not shown)", len(rows)-overtimeDetailCap)
		}
	}

	return b.String() + truncationNote(bundle, fetch.SourceOvertime, len(rows), lang)
}

func sickLeaveSummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.SickLeaves

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد سجلات إجازة مرضية لـ %s.", scope)
		}
		return fmt.Sprintf("No sick leave records for %s.", scope)
	}

	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.StartDate != "" {
			dates = append(dates, r.StartDate)
		} else {
			dates = append(dates, r.Date)
		}
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص الإجازات المرضية لـ %s:\n- عدد سجلات الإجازة المرضية: %d\n- من %s إلى %s",
			scope, len(rows), valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Sick leave summary for %s:\n- Number of sick leave records: %d\n- From %s to %s",
			scope, len(rows), valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceSickLeaves, len(rows), lang)
}

func operationalEventSummary(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.OpsEvents

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد وقائع تشغيلية مسجلة لـ %s.", scope)
		}
		return fmt.Sprintf("No operational events recorded for %s.", scope)
	}

	disciplined := 0
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.DisciplinaryAction != "" {
			disciplined++
		}
		dates = append(dates, r.EventDate)
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص الوقائع التشغيلية لـ %s:\n- إجمالي الوقائع: %d\n- وقائع ترتب عليها إجراء تأديبي: %d\n- من %s إلى %s",
			scope, len(rows), disciplined, valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Operational events summary for %s:\n- Total events: %d\n- Events with a disciplinary action: %d\n- From %s to %s",
			scope, len(rows), disciplined, valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceOpsEvents, len(rows), lang)
}

// movementDelaySection summarizes the movement-control rows fetched as
// part of a full profile. Uses the flight-issues source, not the DEP
// ranking path.
func movementDelaySection(f intent.Filters, bundle *fetch.Bundle, lang textlang.Lang) string {
	scope := scopeLabel(f, lang)
	rows := bundle.FlightIssues

	if len(rows) == 0 {
		if lang.IsArabic() {
			return fmt.Sprintf("لا توجد سجلات تأخير في مراقبة الحركة لـ %s.", scope)
		}
		return fmt.Sprintf("No movement-control delay records for %s.", scope)
	}

	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	start, end := dateSpan(dates)

	var text string
	if lang.IsArabic() {
		text = fmt.Sprintf("ملخص تأخيرات مراقبة الحركة لـ %s:\n- عدد الرحلات التي يظهر فيها: %d\n- من %s إلى %s",
			scope, len(rows), valueOr(start, lang), valueOr(end, lang))
	} else {
		text = fmt.Sprintf("Movement-control delay summary for %s:\n- Number of flights this employee appears in: %d\n- From %s to %s",
			scope, len(rows), valueOr(start, lang), valueOr(end, lang))
	}
	return text + truncationNote(bundle, fetch.SourceFlightIssues, len(rows), lang)
}

// countByEmployee tallies movement-delay rows per employee id in
// first-seen order, pairing each id with its first-seen name. A name
// that conflicts across rows for the same id is dropped to the
// placeholder rather than guessed.
func countByEmployee(rows []tables.MovementDelay) (ids []string, counts map[string]int, names map[string]string, conflicted map[string]bool) {
	counts = make(map[string]int)
	names = make(map[string]string)
	conflicted = make(map[string]bool)

	for _, r := range rows {
		id := r.EmployeeID
		if id == "" {
			continue
		}
		if _, seen := counts[id]; !seen {
			ids = append(ids, id)
			names[id] = r.EmployeeName
		} else if r.EmployeeName != "" && names[id] != "" && r.EmployeeName != names[id] {
			conflicted[id] = true
		}
		counts[id]++
	}
	return ids, counts, names, conflicted
}
