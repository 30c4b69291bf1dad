package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/open-feature/go-sdk-lite/pkg/hook"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

const flagsTable = "flags"

type storedValue struct {
	Key   string
	Value interface{}
}

// InMemoryProvider serves flag values from an in-memory store. Keys missing
// from the store resolve to the caller's default; stored values are coerced
// to the requested type.
type InMemoryProvider struct {
	db     *memdb.MemDB
	hooks  []hook.Hook
	logger log.FieldLogger
}

func NewInMemoryProvider(storage map[string]interface{}, hooks ...hook.Hook) (*InMemoryProvider, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			flagsTable: {
				Name: flagsTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("unable to create flag store: %w", err)
	}

	p := &InMemoryProvider{
		db:     db,
		hooks:  hooks,
		logger: log.WithField("provider", "inmemory"),
	}
	if err := p.SetStorage(storage); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLogger replaces the provider's logger. A nil logger is ignored.
func (p *InMemoryProvider) SetLogger(logger log.FieldLogger) {
	if logger != nil {
		p.logger = logger
	}
}

func (p *InMemoryProvider) Metadata() model.Metadata {
	return model.NewMetadata("InMemoryProvider", "")
}

func (p *InMemoryProvider) Hooks() []hook.Hook {
	return p.hooks
}

// SetStorage replaces every stored value in a single transaction.
func (p *InMemoryProvider) SetStorage(storage map[string]interface{}) error {
	txn := p.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(flagsTable, "id"); err != nil {
		return fmt.Errorf("unable to clear flag store: %w", err)
	}
	for k, v := range storage {
		if err := txn.Insert(flagsTable, storedValue{Key: k, Value: v}); err != nil {
			return fmt.Errorf("unable to store flag %s: %w", k, err)
		}
	}
	txn.Commit()
	p.logger.Debugf("flag store replaced with %d flags", len(storage))
	return nil
}

func (p *InMemoryProvider) Set(key string, value interface{}) error {
	txn := p.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(flagsTable, storedValue{Key: key, Value: value}); err != nil {
		return fmt.Errorf("unable to store flag %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (p *InMemoryProvider) Delete(key string) error {
	txn := p.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(flagsTable, "id", key); err != nil {
		return fmt.Errorf("unable to delete flag %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

// Storage returns a copy of every stored value.
func (p *InMemoryProvider) Storage() (map[string]interface{}, error) {
	txn := p.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(flagsTable, "id")
	if err != nil {
		return nil, fmt.Errorf("unable to read flag store: %w", err)
	}
	storage := map[string]interface{}{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		stored := obj.(storedValue)
		storage[stored.Key] = stored.Value
	}
	return storage, nil
}

func (p *InMemoryProvider) lookup(flagKey string) (interface{}, bool, error) {
	txn := p.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(flagsTable, "id", flagKey)
	if err != nil {
		return nil, false, model.NewGeneralError(fmt.Sprintf("unable to read flag %s: %v", flagKey, err))
	}
	stored, ok := raw.(storedValue)
	if !ok {
		return nil, false, nil
	}
	return stored.Value, true, nil
}

func (p *InMemoryProvider) ResolveBooleanValue(_ context.Context, flagKey string, defaultValue bool, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	raw, found, err := p.lookup(flagKey)
	if err != nil || !found {
		return defaultDetails(flagKey, model.Boolean, defaultValue), err
	}
	value, err := cast.ToBoolE(raw)
	if err != nil {
		return model.FlagEvaluationDetails{}, model.NewTypeMismatchError(err.Error())
	}
	return storedDetails(flagKey, model.Boolean, value), nil
}

func (p *InMemoryProvider) ResolveStringValue(_ context.Context, flagKey string, defaultValue string, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	raw, found, err := p.lookup(flagKey)
	if err != nil || !found {
		return defaultDetails(flagKey, model.String, defaultValue), err
	}
	value, err := cast.ToStringE(raw)
	if err != nil {
		return model.FlagEvaluationDetails{}, model.NewTypeMismatchError(err.Error())
	}
	return storedDetails(flagKey, model.String, value), nil
}

func (p *InMemoryProvider) ResolveNumberValue(_ context.Context, flagKey string, defaultValue float64, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	raw, found, err := p.lookup(flagKey)
	if err != nil || !found {
		return defaultDetails(flagKey, model.Number, defaultValue), err
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return model.FlagEvaluationDetails{}, model.NewTypeMismatchError(err.Error())
	}
	return storedDetails(flagKey, model.Number, value), nil
}

func (p *InMemoryProvider) ResolveObjectValue(_ context.Context, flagKey string, defaultValue map[string]interface{}, _ model.EvaluationContext) (model.FlagEvaluationDetails, error) {
	raw, found, err := p.lookup(flagKey)
	if err != nil || !found {
		return defaultDetails(flagKey, model.Object, defaultValue), err
	}
	value, err := cast.ToStringMapE(raw)
	if err != nil {
		return model.FlagEvaluationDetails{}, model.NewTypeMismatchError(err.Error())
	}
	return storedDetails(flagKey, model.Object, value), nil
}

func storedDetails(flagKey string, flagType model.FlagType, value interface{}) model.FlagEvaluationDetails {
	return model.FlagEvaluationDetails{
		Key:      flagKey,
		FlagType: flagType,
		Value:    value,
		Reason:   model.DefaultReason,
	}
}
