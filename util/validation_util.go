// util/validation_util.go

package util

import (
	"fmt"

	"github.com/sapictureday/sail/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateWorkspace(workspace model.Workspace) error {
	if workspace.Name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if workspace.SortOrder < 0 {
		return fmt.Errorf("workspace sort order cannot be negative")
	}
	return nil
}

func (v *ValidationUtil) ValidatePreference(pref model.WorkspacePreference) error {
	if pref.UserID == "" {
		return fmt.Errorf("preference user ID cannot be empty")
	}
	if pref.WorkspaceID == "" {
		return fmt.Errorf("preference workspace ID cannot be empty")
	}
	return nil
}
