// util/validation_util.go

package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/nikhilsag/hrbridge/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateCreateEmployee(payload model.CreateEmployeePayload) error {
	if payload.FirstName == "" {
		return fmt.Errorf("employee first name cannot be empty")
	}
	if payload.LastName == "" {
		return fmt.Errorf("employee last name cannot be empty")
	}
	if payload.Email == "" {
		return fmt.Errorf("employee email cannot be empty")
	}
	if !strings.Contains(payload.Email, "@") {
		return fmt.Errorf("employee email is not a valid address")
	}
	if payload.HiredOn != "" {
		if err := validateDate(payload.HiredOn); err != nil {
			return fmt.Errorf("employee hired_on: %w", err)
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateTerminateEmployee(payload model.TerminateEmployeePayload) error {
	if payload.TerminatedOn == "" {
		return fmt.Errorf("termination date cannot be empty")
	}
	if err := validateDate(payload.TerminatedOn); err != nil {
		return fmt.Errorf("termination date: %w", err)
	}
	return nil
}

func (v *ValidationUtil) ValidateCreateTeam(payload model.CreateTeamPayload) error {
	if payload.Name == "" {
		return fmt.Errorf("team name cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateCreateLeave(payload model.CreateLeavePayload) error {
	if payload.EmployeeID == 0 {
		return fmt.Errorf("leave employee ID cannot be empty")
	}
	if payload.LeaveType == "" {
		return fmt.Errorf("leave type cannot be empty")
	}
	if err := validateDate(payload.StartOn); err != nil {
		return fmt.Errorf("leave start_on: %w", err)
	}
	if err := validateDate(payload.FinishOn); err != nil {
		return fmt.Errorf("leave finish_on: %w", err)
	}
	if payload.FinishOn < payload.StartOn {
		return fmt.Errorf("leave finish_on cannot be before start_on")
	}
	return nil
}

func (v *ValidationUtil) ValidateUploadDocument(payload model.UploadDocumentPayload) error {
	if payload.EmployeeID == 0 {
		return fmt.Errorf("document employee ID cannot be empty")
	}
	if payload.Filename == "" {
		return fmt.Errorf("document filename cannot be empty")
	}
	if payload.Content == "" {
		return fmt.Errorf("document content cannot be empty")
	}
	return nil
}

func validateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%q is not a valid YYYY-MM-DD date", value)
	}
	return nil
}
