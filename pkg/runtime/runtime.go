package runtime

import (
	"context"

	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	"github.com/open-feature/go-sdk-lite/pkg/service"
)

// Start installs provider as the active provider of api and serves until ctx
// is done.
func Start(ctx context.Context, api *openfeature.API, server service.IService, provider provider.IProvider) error {
	api.SetProvider(provider)
	return server.Serve(ctx, api)
}
