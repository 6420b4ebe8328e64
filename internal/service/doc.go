// Package service contains the application use cases for tasks. It sits
// between the HTTP handlers and the store, and owns the read-through cache
// for the full task listing.
//
// TaskService is the only service. It:
//
//   - validates input into domain.TaskDetails before touching the store
//   - serves List from the cache when possible and fills it on a miss
//   - invalidates the cached listing synchronously after every mutation
//   - maps store sentinels to service sentinels (ErrTaskNotFound)
//   - records one metrics observation per operation
//
// Errors fall into three groups: ErrTaskNotFound, validation errors that wrap
// domain.ErrValidation, and *TaskServiceError for everything else. The API
// layer maps these to 404, 400 and 500 respectively.
package service
