package config

// AI is the closed set of generation backends. Provider selection is a
// strategy choice made once per pipeline run.
type AI string

const (
	AIGemini    AI = "gemini"
	AIAnthropic AI = "anthropic"
	AIOllama    AI = "ollama"
)

type Model string

const (
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"

	ModelClaudeSonnet Model = "claude-sonnet-4-5"
	ModelClaudeHaiku  Model = "claude-haiku-4-5"

	ModelQwenCoder Model = "qwen2.5-coder:7b"
	ModelLlama     Model = "llama3.1:8b"
)

func SupportedAIs() []AI {
	return []AI{
		AIGemini,
		AIAnthropic,
		AIOllama,
	}
}

func IsSupportedAI(ai AI) bool {
	for _, supported := range SupportedAIs() {
		if ai == supported {
			return true
		}
	}
	return false
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIGemini:
		return []Model{
			ModelGeminiV25Pro,
			ModelGeminiV25Flash,
			ModelGeminiV25FlashLite,
		}
	case AIAnthropic:
		return []Model{
			ModelClaudeSonnet,
			ModelClaudeHaiku,
		}
	case AIOllama:
		return []Model{
			ModelQwenCoder,
			ModelLlama,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}
