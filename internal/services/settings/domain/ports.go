package domain

import "context"

// ServicePort is the settings surface shared with other modules and http
type ServicePort interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, in UpdateInput) (Settings, error)
	ToggleTab(ctx context.Context, in ToggleInput) (ToggleResult, error)
}
