package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds a bundle with the embedded English defaults
// plus any locale files found under localesPath (active.*.toml).
func NewTranslations(defaultLang string, localesPath string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesPath == "" {
		localesPath = "locales"
	}

	files, err := filepath.Glob(filepath.Join(localesPath, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Generate conventional commit messages from your staged changes"

	[app_description]
	other = "CommitSage analyzes your staged diff and uses an AI backend to write a conventional commit message, refining it through self-review"

	[generate_command_usage]
	other = "Analyze staged changes and generate a commit message"

	[generate_command_description]
	other = "Runs the full generation pipeline: diff analysis, example selection, generation, reflection and verification"

	[generate_provider_flag_usage]
	other = "Backend to use (gemini, anthropic, ollama)"

	[generate_no_scope_flag_usage]
	other = "Omit the scope from the generated message"

	[generate_iterations_flag_usage]
	other = "Maximum refinement cycles after the initial generation"

	[generate_yes_flag_usage]
	other = "Commit without asking for confirmation"

	[generate_dry_run_flag_usage]
	other = "Print the generated message without committing"

	[analyzing_changes]
	other = "Analyzing staged changes..."

	[no_staged_changes]
	other = "No staged changes to commit.\nUse 'git add' to stage your changes first"

	[not_a_repository]
	other = "The current directory is not a git repository"

	[generation_failed]
	other = "Could not generate a commit message: {{.Error}}"

	[provider_not_available]
	other = "Provider '{{.Provider}}' is not available. Check your configuration with 'commitsage config show'"

	[generated_message_header]
	other = "Generated commit message"

	[generation_trace_header]
	other = "Pipeline trace"

	[trace_iterations]
	one = "{{.Count}} generation call"
	other = "{{.Count}} generation calls"

	[trace_confidence]
	other = "Confidence: {{.Confidence}}/100"

	[trace_quality]
	other = "Reflection {{.Index}}: {{.Decision}} (quality {{.Score}}/100)"

	[trace_verification]
	other = "Verification: factual accuracy {{.Score}}/100"

	[trace_skipped_stage]
	other = "Skipped {{.Stage}}: {{.Reason}}"

	[trace_total_latency]
	other = "Total latency: {{.Latency}}"

	[confirm_commit_prompt]
	other = "Create commit with this message? [y/N]"

	[commit_created]
	other = "Commit created successfully"

	[operation_cancelled]
	other = "Operation cancelled"

	[error_missing_api_key]
	other = "No API key configured for {{.Provider}}. Set it with 'commitsage config set-api-key'"

	[config_command_usage]
	other = "Manage CommitSage configuration"

	[config_init_usage]
	other = "Create a default configuration file"

	[config_show_usage]
	other = "Show the current configuration"

	[config_set_api_key_usage]
	other = "Store an API key for a backend"

	[config_set_provider_usage]
	other = "Select the active generation backend"

	[config_set_lang_usage]
	other = "Set the interface language"

	[config_initialized]
	other = "Configuration created at {{.Path}}"

	[config_saved]
	other = "Configuration saved"

	[config_invalid_provider]
	other = "Unsupported provider '{{.Provider}}'. Valid values: {{.Valid}}"

	[current_config]
	other = "Current configuration"

	[api_key_flag_usage]
	other = "API key value"

	[api_key_provider_flag_usage]
	other = "Backend the key belongs to (gemini, anthropic, github)"

	[lang_flag_usage]
	other = "Interface language (en, es)"

	[provider_flag_usage]
	other = "Backend to activate (gemini, anthropic, ollama)"

	[invalid_api_key]
	other = "The API key looks invalid, it is too short"

	[api_key_configured]
	other = "API key for {{.Provider}} saved"

	[language_configured]
	other = "Language set to '{{.Lang}}'"

	[unsupported_language]
	other = "Unsupported language. Valid values: en, es"

	[provider_configured]
	other = "Active provider set to '{{.Provider}}'"

	[language_label]
	other = "Language: {{.Lang}}"

	[active_provider_label]
	other = "Active provider: {{.Provider}}"

	[model_label]
	other = "Model for {{.Provider}}: {{.Model}}"

	[api_key_set]
	other = "API key for {{.Provider}}: configured"

	[api_key_not_set]
	other = "API key for {{.Provider}}: not set"

	[ollama_url_label]
	other = "Ollama URL: {{.URL}}"
	`
