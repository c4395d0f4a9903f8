// Package pipeline chains the steps that run after a successful push:
// resolve the assignee, match the pushed repository against a project on
// the host, and submit the merge request.
package pipeline

import "errors"

// Error definitions for pipeline stages.
var (
	errAssigneeNotFound  = errors.New("assignee not found, check the assignee name or id")
	errAssigneeAmbiguous = errors.New("assignee is not unique, refine the query or use an id")
	errProjectNotFound   = errors.New("project not found on the configured host")

	// Exported errors for testing and external use.
	ErrAssigneeNotFound  = errAssigneeNotFound
	ErrAssigneeAmbiguous = errAssigneeAmbiguous
	ErrProjectNotFound   = errProjectNotFound
)
