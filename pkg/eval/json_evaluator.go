package eval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	log "github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

var schemaLoader = gojsonschema.NewStringLoader(flagDefinitionSchema)

// JsonEvaluator resolves flags from a flag definition document. Targeting
// rules are JsonLogic expressions that evaluate to a variant name; a null
// result falls back to the default variant.
type JsonEvaluator struct {
	mx    sync.RWMutex
	state model.Flags
}

func (je *JsonEvaluator) GetState() (string, error) {
	je.mx.RLock()
	defer je.mx.RUnlock()
	data, err := json.Marshal(&je.state)
	if err != nil {
		return "", fmt.Errorf("unable to marshal flags: %w", err)
	}
	return string(data), nil
}

// SetState validates the document and replaces the current state.
func (je *JsonEvaluator) SetState(state string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(state))
	if err != nil {
		return fmt.Errorf("unable to validate flag definitions: %w", err)
	} else if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return errors.New("invalid flag definitions: " + strings.Join(problems, "; "))
	}

	var newState model.Flags
	if err := json.Unmarshal([]byte(state), &newState); err != nil {
		return fmt.Errorf("unable to parse flag definitions: %w", err)
	}
	for key, flag := range newState.Flags {
		flag.Key = key
		newState.Flags[key] = flag
	}

	je.mx.Lock()
	je.state = newState
	je.mx.Unlock()
	return nil
}

func (je *JsonEvaluator) ResolveBooleanValue(flagKey string, evalCtx model.EvaluationContext) (bool, string, model.Reason, error) {
	value, variant, reason, err := je.evaluateVariant(flagKey, evalCtx)
	if err != nil || value == nil {
		return false, variant, reason, err
	}
	v, ok := value.(bool)
	if !ok {
		return false, variant, model.ErrorReason, model.NewTypeMismatchError(fmt.Sprintf("flag %s is not a boolean", flagKey))
	}
	return v, variant, reason, nil
}

func (je *JsonEvaluator) ResolveStringValue(flagKey string, evalCtx model.EvaluationContext) (string, string, model.Reason, error) {
	value, variant, reason, err := je.evaluateVariant(flagKey, evalCtx)
	if err != nil || value == nil {
		return "", variant, reason, err
	}
	v, ok := value.(string)
	if !ok {
		return "", variant, model.ErrorReason, model.NewTypeMismatchError(fmt.Sprintf("flag %s is not a string", flagKey))
	}
	return v, variant, reason, nil
}

func (je *JsonEvaluator) ResolveNumberValue(flagKey string, evalCtx model.EvaluationContext) (float64, string, model.Reason, error) {
	value, variant, reason, err := je.evaluateVariant(flagKey, evalCtx)
	if err != nil || value == nil {
		return 0, variant, reason, err
	}
	v, ok := value.(float64)
	if !ok {
		return 0, variant, model.ErrorReason, model.NewTypeMismatchError(fmt.Sprintf("flag %s is not a number", flagKey))
	}
	return v, variant, reason, nil
}

func (je *JsonEvaluator) ResolveObjectValue(flagKey string, evalCtx model.EvaluationContext) (map[string]interface{}, string, model.Reason, error) {
	value, variant, reason, err := je.evaluateVariant(flagKey, evalCtx)
	if err != nil || value == nil {
		return nil, variant, reason, err
	}
	v, ok := value.(map[string]interface{})
	if !ok {
		return nil, variant, model.ErrorReason, model.NewTypeMismatchError(fmt.Sprintf("flag %s is not an object", flagKey))
	}
	return v, variant, reason, nil
}

// evaluateVariant returns a nil value with DisabledReason for disabled flags.
func (je *JsonEvaluator) evaluateVariant(flagKey string, evalCtx model.EvaluationContext) (interface{}, string, model.Reason, error) {
	je.mx.RLock()
	flag, ok := je.state.Flags[flagKey]
	je.mx.RUnlock()
	if !ok {
		return nil, "", model.ErrorReason, model.NewFlagNotFoundError(fmt.Sprintf("flag %s not found", flagKey))
	}

	if flag.State == model.DisabledState {
		return nil, "", model.DisabledReason, nil
	}

	variant := flag.DefaultVariant
	reason := model.DefaultReason

	if len(flag.Targeting) != 0 && string(flag.Targeting) != "{}" {
		targetVariant, err := evaluateTargeting(flag.Targeting, evalCtx)
		if err != nil {
			log.Errorf("error applying targeting rules for flag %s: %v", flagKey, err)
			return nil, "", model.ErrorReason, model.NewParseError(err.Error())
		}
		if targetVariant != "" {
			variant = targetVariant
			reason = model.TargetingMatchReason
		}
	}

	value, ok := flag.Variants[variant]
	if !ok {
		return nil, variant, model.ErrorReason, model.NewParseError(fmt.Sprintf("flag %s has no variant %s", flagKey, variant))
	}
	return value, variant, reason, nil
}

// evaluateTargeting returns the variant selected by the rule, or "" when the
// rule evaluates to null.
func evaluateTargeting(targeting json.RawMessage, evalCtx model.EvaluationContext) (string, error) {
	data, err := json.Marshal(evalCtx.Flatten())
	if err != nil {
		return "", fmt.Errorf("unable to marshal evaluation context: %w", err)
	}

	var result bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(targeting), bytes.NewReader(data), &result); err != nil {
		return "", fmt.Errorf("unable to apply targeting: %w", err)
	}

	var variant interface{}
	if err := json.Unmarshal(result.Bytes(), &variant); err != nil {
		return "", fmt.Errorf("unable to parse targeting result: %w", err)
	}
	switch v := variant.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("targeting returned %v, expected a variant name", v)
	}
}
