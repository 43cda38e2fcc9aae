// Package compliance identifies employees whose tracked billable hours
// trail the weekly target.
package compliance

import "github.com/bva/billabot/internal/domain/model"

// FindOffenders returns every total strictly below target. Equal-to-
// target is compliant. The caller samples the target once per
// evaluation so all records in a batch are judged against the same
// threshold.
func FindOffenders(totals []model.Total, targetHours float64) []model.Offender {
	var offenders []model.Offender
	for _, t := range totals {
		if t.BillableHours < targetHours {
			offenders = append(offenders, model.Offender(t))
		}
	}
	return offenders
}
