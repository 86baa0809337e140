package api

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/models"
)

// resource is plain CRUD over base and base/{id}.
type resource[T any] struct {
	r    Requester
	base string
}

func (c resource[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.r.Get(ctx, c.base, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c resource[T]) GetByID(ctx context.Context, id models.ID) (*T, error) {
	var out T
	if err := c.r.Get(ctx, c.base+"/"+segment(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c resource[T]) Create(ctx context.Context, item T) (*T, error) {
	var out T
	if err := c.r.Post(ctx, c.base, item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c resource[T]) Update(ctx context.Context, id models.ID, item T) (*T, error) {
	var out T
	if err := c.r.Put(ctx, c.base+"/"+segment(id), item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c resource[T]) Delete(ctx context.Context, id models.ID) (*models.ActionResponse, error) {
	var out models.ActionResponse
	if err := c.r.Delete(ctx, c.base+"/"+segment(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClassesAPI is admin-managed CRUD over /classes.
type ClassesAPI struct {
	resource[models.Class]
}

func NewClassesAPI(r Requester) *ClassesAPI {
	return &ClassesAPI{resource[models.Class]{r: r, base: "/classes"}}
}

// CohortsAPI is admin-managed CRUD over /cohorts.
type CohortsAPI struct {
	resource[models.Cohort]
}

func NewCohortsAPI(r Requester) *CohortsAPI {
	return &CohortsAPI{resource[models.Cohort]{r: r, base: "/cohorts"}}
}
