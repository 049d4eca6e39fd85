package feedback

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Category string

const (
	CategorySuggestion Category = "suggestion"
	CategoryBug        Category = "bug"
	CategoryFeature    Category = "feature"
	CategoryGeneral    Category = "general"
)

var Categories = []Category{CategorySuggestion, CategoryBug, CategoryFeature, CategoryGeneral}

func (Category) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(CategorySuggestion), string(CategoryBug), string(CategoryFeature), string(CategoryGeneral)},
		Description: "Kind of feedback",
		Examples:    []any{string(CategoryGeneral)},
	}
}

func (c Category) Validate() error {
	switch c {
	case CategorySuggestion, CategoryBug, CategoryFeature, CategoryGeneral:
		return nil
	}
	return fmt.Errorf("unknown feedback type: %s", c)
}

type Status string

const (
	StatusNew        Status = "new"
	StatusReviewed   Status = "reviewed"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

var Statuses = []Status{StatusNew, StatusReviewed, StatusInProgress, StatusResolved}

func (Status) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(StatusNew), string(StatusReviewed), string(StatusInProgress), string(StatusResolved)},
		Description: "Review state of a feedback entry",
		Examples:    []any{string(StatusReviewed)},
	}
}

func (s Status) Validate() error {
	switch s {
	case StatusNew, StatusReviewed, StatusInProgress, StatusResolved:
		return nil
	}
	return fmt.Errorf("unknown feedback status: %s", s)
}
