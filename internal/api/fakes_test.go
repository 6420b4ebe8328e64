package api

import (
	"context"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// fakeTaskService implements service.TaskService with overridable functions.
// Unset functions return zero values.
type fakeTaskService struct {
	ListFn        func(ctx context.Context) ([]domain.Task, error)
	CreateFn      func(ctx context.Context, input service.TaskInput) (*domain.Task, error)
	UpdateFn      func(ctx context.Context, id int64, input service.TaskInput) (*domain.Task, error)
	ToggleFn      func(ctx context.Context, id int64) (bool, error)
	DeleteFn      func(ctx context.Context, id int64) error
	CheckHealthFn func(ctx context.Context) error
}

var _ service.TaskService = (*fakeTaskService)(nil)

func (f *fakeTaskService) List(ctx context.Context) ([]domain.Task, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeTaskService) Create(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, input)
	}
	return nil, nil
}

func (f *fakeTaskService) Update(ctx context.Context, id int64, input service.TaskInput) (*domain.Task, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, input)
	}
	return nil, nil
}

func (f *fakeTaskService) Toggle(ctx context.Context, id int64) (bool, error) {
	if f.ToggleFn != nil {
		return f.ToggleFn(ctx, id)
	}
	return false, nil
}

func (f *fakeTaskService) Delete(ctx context.Context, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTaskService) CheckHealth(ctx context.Context) error {
	if f.CheckHealthFn != nil {
		return f.CheckHealthFn(ctx)
	}
	return nil
}
