package permission

import "errors"

var (
	ErrNotEnoughRights   = errors.New("no rights to edit this checklist")
	ErrNotAdministrator  = errors.New("only administrators can edit channel checklists")
	ErrPersonalChecklist = errors.New("checklist is personal")
)
