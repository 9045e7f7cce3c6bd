// Package service contains the task tracker's use cases. Each mutating
// operation applies a change to the task store and then asks the persister
// to flush, so the HTTP layer never touches storage directly.
//
// Error handling principles:
//  1. Expected conditions are returned as sentinel errors (ErrTaskNotFound,
//     ErrInvalidTask) that callers check with errors.Is.
//  2. Unexpected errors are wrapped in TaskServiceError with the operation name.
//  3. Persistence failures are never returned; the persister logs them.
package service
