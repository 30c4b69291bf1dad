package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/open-feature/go-sdk-lite/pkg/provider"
	log "github.com/sirupsen/logrus"
)

// findProvider builds and initializes the named provider. The returned
// function releases its resources.
func findProvider(name string, uri string, resyncSchedule string) (provider.IProvider, func(), error) {
	switch name {
	case "noop":
		return provider.NoopProvider{}, func() {}, nil
	case "inmemory":
		storage := map[string]interface{}{}
		if uri != "" {
			raw, err := os.ReadFile(uri)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to read storage file: %w", err)
			}
			if err := json.Unmarshal(raw, &storage); err != nil {
				return nil, nil, fmt.Errorf("unable to parse storage file: %w", err)
			}
		}
		p, err := provider.NewInMemoryProvider(storage)
		if err != nil {
			return nil, nil, err
		}
		p.SetLogger(log.WithFields(log.Fields{"provider": "inmemory", "uri": uri}))
		return p, func() {}, nil
	case "filepath":
		fp := &provider.FilePathProvider{URI: uri, ResyncSchedule: resyncSchedule}
		if err := fp.Initialize(); err != nil {
			return nil, nil, err
		}
		return fp, fp.Close, nil
	case "":
		return nil, nil, errors.New("no provider set")
	}
	return nil, nil, fmt.Errorf("unknown provider %q", name)
}

func mustFindProvider(name string, uri string, resyncSchedule string) (provider.IProvider, func()) {
	p, closeFn, err := findProvider(name, uri, resyncSchedule)
	if err != nil {
		log.Fatalf("unable to configure %s provider: %v", name, err)
	}
	log.Debugf("using %s provider", name)
	return p, closeFn
}
