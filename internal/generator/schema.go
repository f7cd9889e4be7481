package generator

// lessonSchema is the contract an AI analysis response must meet before
// it is trusted. Anything failing validation triggers the rule-based
// fallback.
const lessonSchema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "required": ["title", "learning_objectives", "sections", "questions"],
    "properties": {
        "title": {"type": "string", "minLength": 1},
        "introduction": {"type": "string"},
        "learning_objectives": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string"}
        },
        "key_concepts": {
            "type": "array",
            "items": {
                "anyOf": [
                    {"type": "string"},
                    {
                        "type": "object",
                        "required": ["term"],
                        "properties": {
                            "term": {"type": "string"},
                            "definition": {"type": "string"}
                        }
                    }
                ]
            }
        },
        "sections": {
            "type": "array",
            "minItems": 1,
            "items": {
                "type": "object",
                "required": ["content"],
                "properties": {
                    "type": {"type": "string"},
                    "title": {"type": "string"},
                    "content": {"type": "string"},
                    "order": {"type": "integer"}
                }
            }
        },
        "questions": {
            "type": "array",
            "minItems": 1,
            "items": {
                "type": "object",
                "required": ["text", "options", "correct_answer"],
                "properties": {
                    "type": {"type": "string"},
                    "text": {"type": "string"},
                    "options": {"type": "array", "items": {"type": "string"}},
                    "correct_answer": {"type": "string"},
                    "explanation": {"type": "string"},
                    "difficulty": {"type": "string"}
                }
            }
        },
        "estimated_duration": {"type": ["integer", "number"]},
        "difficulty_level": {"type": "string"}
    }
}`
