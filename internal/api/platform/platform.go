// Package platform defines the contract a fantasy platform adapter satisfies
// to feed the report pipeline.
package platform

import (
	"github.com/omarshaarawi/flickerreport/internal/models"
)

// Adapter populates the common league model from a platform's API. Populate
// must return a league whose weekly collections cover every week from
// startWeek through weekForReport.
type Adapter interface {
	Populate(startWeek, weekForReport int) (*models.League, error)
}
