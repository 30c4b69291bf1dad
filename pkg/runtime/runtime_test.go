package runtime

import (
	"context"
	"testing"

	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	providerName string
}

func (r *recordingService) Serve(_ context.Context, api *openfeature.API) error {
	r.providerName = api.Provider().Metadata().Name
	return nil
}

func TestStart_InstallsProviderBeforeServing(t *testing.T) {
	logger, _ := test.NewNullLogger()
	api := openfeature.NewAPI(logger)
	p, err := provider.NewInMemoryProvider(nil)
	require.NoError(t, err)
	svc := &recordingService{}

	require.NoError(t, Start(context.Background(), api, svc, p))

	assert.Equal(t, "InMemoryProvider", svc.providerName)
}
