package service

import (
	"context"
	"strings"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

type ResourceRequest struct {
	Title        string        `json:"title" validate:"required"`
	Description  string        `json:"description"`
	ResourceType string        `json:"resource_type" validate:"required"`
	Link         string        `json:"link" validate:"omitempty,url"`
	Content      internal.Blob `json:"content"`
}

func requireAdmin(user *internal.User) error {
	if !user.IsAdmin() {
		return internal.ErrForbidden
	}
	return nil
}

func AddResource(ctx context.Context, repo storage.ResourceRepository, user *internal.User, req *ResourceRequest) (*internal.Resource, error) {
	if err := requireAdmin(user); err != nil {
		return nil, err
	}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	r := &internal.Resource{
		Title:        req.Title,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		Link:         req.Link,
		Content:      req.Content,
	}
	id, err := repo.AddResource(ctx, r)
	if err != nil {
		return nil, err
	}
	r.ID = id
	return r, nil
}

func UpdateResource(ctx context.Context, repo storage.ResourceRepository, user *internal.User, id int64, req *ResourceRequest) (*internal.Resource, error) {
	if err := requireAdmin(user); err != nil {
		return nil, err
	}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	r := &internal.Resource{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		ResourceType: req.ResourceType,
		Link:         req.Link,
		Content:      req.Content,
	}
	if err := repo.UpdateResource(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func DeleteResource(ctx context.Context, repo storage.ResourceRepository, user *internal.User, id int64) error {
	if err := requireAdmin(user); err != nil {
		return err
	}
	return repo.DeleteResource(ctx, id)
}

// SearchResources matches term against title and description, ignoring case.
func SearchResources(resources []internal.Resource, term string) []internal.Resource {
	out := []internal.Resource{}
	for i := range resources {
		if resources[i].Matches(term) {
			out = append(out, resources[i])
		}
	}
	return out
}

func ResourcesByType(resources []internal.Resource, resourceType string) []internal.Resource {
	out := []internal.Resource{}
	for _, r := range resources {
		if strings.EqualFold(r.ResourceType, resourceType) {
			out = append(out, r)
		}
	}
	return out
}
