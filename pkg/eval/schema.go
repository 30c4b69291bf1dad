package eval

// flagDefinitionSchema validates flag definition documents.
const flagDefinitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["flags"],
  "properties": {
    "flags": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["state", "variants", "defaultVariant"],
        "properties": {
          "state": {
            "type": "string",
            "enum": ["ENABLED", "DISABLED"]
          },
          "variants": {
            "type": "object",
            "minProperties": 1
          },
          "defaultVariant": {
            "type": "string"
          },
          "targeting": {
            "type": "object"
          },
          "metadata": {
            "type": "object"
          }
        }
      }
    }
  }
}`
