package service

import (
	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

// ResolveView maps a role and navigation context onto the closed set of
// attendance views. It is a pure decision function; rendering happens
// elsewhere.
//
// Teachers reach live marking only with a complete marking context, which is
// produced by a successful slot resolution; anything less lands on the
// summary view. Admins drill into a student detail by selecting a row and
// return to the overview by resolving with the selection cleared.
func ResolveView(role models.UserRole, nav models.NavigationContext) (*models.ViewState, error) {
	switch role {
	case models.RoleAdmin:
		if nav.SelectedStudentID != "" {
			return &models.ViewState{Kind: models.ViewAdminStudentDetail, StudentID: nav.SelectedStudentID}, nil
		}
		return &models.ViewState{Kind: models.ViewAdminOverview}, nil
	case models.RoleTeacher:
		if nav.Marking.Complete() {
			return &models.ViewState{Kind: models.ViewTeacherLiveMarking, Marking: nav.Marking}, nil
		}
		return &models.ViewState{Kind: models.ViewTeacherSummary}, nil
	case models.RoleStudent:
		return &models.ViewState{Kind: models.ViewStudentHistory}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "unknown role")
	}
}
