package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/open-feature/go-sdk-lite/pkg/eval"
	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

// FilePathProvider resolves flags from a flag definition file. The file is
// reloaded when it is written and, when ResyncSchedule is set, on that cron
// schedule. A reload that fails validation keeps the previous flags.
type FilePathProvider struct {
	URI            string
	ResyncSchedule string
	HookList       []hook.Hook

	evaluator eval.JsonEvaluator
	ready     atomic.Bool
	watcher   *fsnotify.Watcher
	cron      *cron.Cron
	closeOnce sync.Once
}

func (fp *FilePathProvider) Metadata() model.Metadata {
	return model.NewMetadata("FilePathProvider", "")
}

func (fp *FilePathProvider) Hooks() []hook.Hook {
	return fp.HookList
}

// Initialize loads the file and starts watching it. Resolvers report
// PROVIDER_NOT_READY until Initialize has succeeded.
func (fp *FilePathProvider) Initialize() error {
	if err := fp.reload(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	if err := watcher.Add(fp.URI); err != nil {
		watcher.Close()
		return fmt.Errorf("unable to watch %s: %w", fp.URI, err)
	}
	fp.watcher = watcher
	go fp.watch()

	if fp.ResyncSchedule != "" {
		fp.cron = cron.New()
		if err := fp.cron.AddFunc(fp.ResyncSchedule, fp.resync); err != nil {
			fp.Close()
			return fmt.Errorf("invalid resync schedule %q: %w", fp.ResyncSchedule, err)
		}
		fp.cron.Start()
	}

	fp.ready.Store(true)
	return nil
}

// Close stops watching and resyncing. The last loaded flags remain
// available.
func (fp *FilePathProvider) Close() {
	fp.closeOnce.Do(func() {
		if fp.watcher != nil {
			fp.watcher.Close()
		}
		if fp.cron != nil {
			fp.cron.Stop()
		}
	})
}

func (fp *FilePathProvider) watch() {
	for {
		select {
		case event, ok := <-fp.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fp.resync()
			}
		case err, ok := <-fp.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("error watching %s: %v", fp.URI, err)
		}
	}
}

func (fp *FilePathProvider) resync() {
	if err := fp.reload(); err != nil {
		log.Error(err)
		return
	}
	log.Infof("flag values updated from %s", fp.URI)
}

func (fp *FilePathProvider) reload() error {
	if fp.URI == "" {
		return errors.New("no filepath string set")
	}
	rawFile, err := os.ReadFile(fp.URI)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", fp.URI, err)
	}
	if err := fp.evaluator.SetState(string(rawFile)); err != nil {
		return fmt.Errorf("unable to load %s: %w", fp.URI, err)
	}
	return nil
}

func (fp *FilePathProvider) notReady() error {
	return model.NewProviderNotReadyError(fmt.Sprintf("flags from %s have not been loaded", fp.URI))
}

func (fp *FilePathProvider) ResolveBooleanValue(_ context.Context, flagKey string, defaultValue bool, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	if !fp.ready.Load() {
		return model.FlagEvaluationDetails{}, fp.notReady()
	}
	value, variant, reason, err := fp.evaluator.ResolveBooleanValue(flagKey, evalCtx)
	if err != nil {
		return model.FlagEvaluationDetails{}, err
	}
	if reason == model.DisabledReason {
		value = defaultValue
	}
	return fileDetails(flagKey, model.Boolean, value, variant, reason), nil
}

func (fp *FilePathProvider) ResolveStringValue(_ context.Context, flagKey string, defaultValue string, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	if !fp.ready.Load() {
		return model.FlagEvaluationDetails{}, fp.notReady()
	}
	value, variant, reason, err := fp.evaluator.ResolveStringValue(flagKey, evalCtx)
	if err != nil {
		return model.FlagEvaluationDetails{}, err
	}
	if reason == model.DisabledReason {
		value = defaultValue
	}
	return fileDetails(flagKey, model.String, value, variant, reason), nil
}

func (fp *FilePathProvider) ResolveNumberValue(_ context.Context, flagKey string, defaultValue float64, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	if !fp.ready.Load() {
		return model.FlagEvaluationDetails{}, fp.notReady()
	}
	value, variant, reason, err := fp.evaluator.ResolveNumberValue(flagKey, evalCtx)
	if err != nil {
		return model.FlagEvaluationDetails{}, err
	}
	if reason == model.DisabledReason {
		value = defaultValue
	}
	return fileDetails(flagKey, model.Number, value, variant, reason), nil
}

func (fp *FilePathProvider) ResolveObjectValue(_ context.Context, flagKey string, defaultValue map[string]interface{}, evalCtx model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	if !fp.ready.Load() {
		return model.FlagEvaluationDetails{}, fp.notReady()
	}
	value, variant, reason, err := fp.evaluator.ResolveObjectValue(flagKey, evalCtx)
	if err != nil {
		return model.FlagEvaluationDetails{}, err
	}
	if reason == model.DisabledReason {
		value = defaultValue
	}
	return fileDetails(flagKey, model.Object, value, variant, reason), nil
}

func fileDetails(flagKey string, flagType model.FlagType, value interface{}, variant string, reason model.Reason) model.FlagEvaluationDetails {
	return model.FlagEvaluationDetails{
		Key:      flagKey,
		FlagType: flagType,
		Value:    value,
		Variant:  variant,
		Reason:   reason,
	}
}
