package service

import (
	"context"

	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
)

// IService exposes flag evaluation through some transport until ctx is done.
type IService interface {
	Serve(ctx context.Context, api *openfeature.API) error
}
