// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Split selects the dataset partition.
type Split string

const (
	SplitTrain Split = "train"
	SplitValid Split = "valid"
	SplitTest  Split = "test"
)

// FileSuffix returns the transcript file suffix for the split. The
// valid and test partitions ship as rare-topic variants.
func (s Split) FileSuffix() string {
	switch s {
	case SplitValid:
		return "valid_rare"
	case SplitTest:
		return "test_rare"
	default:
		return "train"
	}
}

// IsTrain reports whether the split is the training partition.
func (s Split) IsTrain() bool {
	return s == SplitTrain || s == ""
}

// LabelType selects the example label source.
type LabelType string

const (
	// LabelResponse labels examples with the wizard's reply text.
	LabelResponse LabelType = "response"

	// LabelChosenSent labels examples with the checked knowledge
	// sentence, formatted as "title sentence".
	LabelChosenSent LabelType = "chosen_sent"
)

// DatasetConfig holds settings for transcript loading.
type DatasetConfig struct {
	// DataPath is the base directory holding per-task dataset folders.
	DataPath string `json:"data_path" yaml:"data_path"`

	// Task is the dataset folder name (default "topical_chat").
	Task string `json:"task" yaml:"task"`

	// Split selects the partition to load.
	Split Split `json:"split" yaml:"split"`
}

// TeacherConfig holds settings for the dialog knowledge teacher.
type TeacherConfig struct {
	// LabelType selects response or chosen_sent labels (default response).
	LabelType LabelType `json:"label_type" yaml:"label_type"`

	// IncludeKnowledge attaches the knowledge string to examples
	// (default true).
	IncludeKnowledge bool `json:"include_knowledge" yaml:"include_knowledge"`

	// IncludeCheckedSentence attaches the resolved title and checked
	// sentence to examples (default false).
	IncludeCheckedSentence bool `json:"include_checked_sentence" yaml:"include_checked_sentence"`

	// KnowledgeSeparator inserts the __knowledge__ token between title
	// and sentence in formatted strings (default false).
	KnowledgeSeparator bool `json:"include_knowledge_separator" yaml:"include_knowledge_separator"`

	// ChosenTopicDelimiter separates the chosen topic from the first
	// utterance when both appear in text (default "\n"). Recognized for
	// compatibility; the current formatting path does not consume it.
	ChosenTopicDelimiter string `json:"chosen_topic_delimiter" yaml:"chosen_topic_delimiter"`

	// NumTopics is the number of topic choices offered in interactive
	// mode (default 5).
	NumTopics int `json:"num_topics" yaml:"num_topics"`
}

// GeneratorConfig holds settings for the generator teacher.
type GeneratorConfig struct {
	TeacherConfig `yaml:",inline"`

	// OnlyCheckedKnowledge restricts knowledge to the gold sentence,
	// discarding all other retrieved passages.
	OnlyCheckedKnowledge bool `json:"only_checked_knowledge" yaml:"only_checked_knowledge"`

	// IgnorantDropout is the probability in [0,1] of erasing all
	// knowledge from an example. 1 yields a completely ignorant teacher.
	IgnorantDropout float64 `json:"ignorant_dropout" yaml:"ignorant_dropout"`

	// PrependGoldKnowledge prepends the checked sentence, wrapped in
	// knowledge tokens, to the example text.
	PrependGoldKnowledge bool `json:"prepend_gold_knowledge" yaml:"prepend_gold_knowledge"`

	// GoldKnowledgeDelimiter separates prepended knowledge from the
	// original text (default "\n").
	GoldKnowledgeDelimiter string `json:"gold_knowledge_delimiter" yaml:"gold_knowledge_delimiter"`

	// Seed initializes the dropout random source. Zero selects a
	// time-based seed.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// WorldConfig holds settings for the conversation drivers.
type WorldConfig struct {
	// GoldKnowledgeDelimiter separates the knowledge wrapper from the
	// user text in observations (default "\n").
	GoldKnowledgeDelimiter string `json:"gold_knowledge_delimiter" yaml:"gold_knowledge_delimiter"`
}

// AgentConfig holds settings for the Ollama-backed response agent.
type AgentConfig struct {
	// Host is the Ollama server base URL. Empty selects the client's
	// environment default.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Model is the Ollama model identifier.
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// NumPredict caps generated tokens per reply (default 256).
	NumPredict int `json:"num_predict" yaml:"num_predict"`
}

// IndexConfig holds settings for the example index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite database and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Dataset   DatasetConfig   `json:"dataset" yaml:"dataset"`
	Teacher   TeacherConfig   `json:"teacher" yaml:"teacher"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	World     WorldConfig     `json:"world" yaml:"world"`
	Agent     AgentConfig     `json:"agent" yaml:"agent"`
	Index     IndexConfig     `json:"index" yaml:"index"`
}
