package model

// TargetingKeyAttribute is the attribute name under which Flatten exposes the
// targeting key to rule engines.
const TargetingKeyAttribute = "targetingKey"

// EvaluationContext carries request scoped attributes into an evaluation.
// It is an immutable value: every "With" method returns a copy, so a context
// can be shared across goroutines.
type EvaluationContext struct {
	targetingKey string
	attributes   map[string]interface{}
}

// NewEvaluationContext copies attributes into a new context.
func NewEvaluationContext(targetingKey string, attributes map[string]interface{}) EvaluationContext {
	attrs := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	return EvaluationContext{
		targetingKey: targetingKey,
		attributes:   attrs,
	}
}

func (e EvaluationContext) TargetingKey() string {
	return e.targetingKey
}

func (e EvaluationContext) Attribute(key string) (interface{}, bool) {
	v, ok := e.attributes[key]
	return v, ok
}

// Attributes returns a copy of the attribute map.
func (e EvaluationContext) Attributes() map[string]interface{} {
	attrs := make(map[string]interface{}, len(e.attributes))
	for k, v := range e.attributes {
		attrs[k] = v
	}
	return attrs
}

func (e EvaluationContext) Len() int {
	return len(e.attributes)
}

func (e EvaluationContext) WithTargetingKey(targetingKey string) EvaluationContext {
	return NewEvaluationContext(targetingKey, e.attributes)
}

func (e EvaluationContext) WithAttribute(key string, value interface{}) EvaluationContext {
	ec := NewEvaluationContext(e.targetingKey, e.attributes)
	ec.attributes[key] = value
	return ec
}

// Flatten returns the attributes with the targeting key added under
// TargetingKeyAttribute when it is set.
func (e EvaluationContext) Flatten() map[string]interface{} {
	flat := e.Attributes()
	if e.targetingKey != "" {
		flat[TargetingKeyAttribute] = e.targetingKey
	}
	return flat
}

// MergeEvaluationContexts merges contexts in precedence order: attributes of
// later contexts overwrite earlier ones key by key (shallow, nested values are
// replaced whole) and the targeting key is the last non-empty one.
func MergeEvaluationContexts(contexts ...EvaluationContext) EvaluationContext {
	merged := EvaluationContext{attributes: map[string]interface{}{}}
	for _, c := range contexts {
		for k, v := range c.attributes {
			merged.attributes[k] = v
		}
		if c.targetingKey != "" {
			merged.targetingKey = c.targetingKey
		}
	}
	return merged
}
