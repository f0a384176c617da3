// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/internal/teacher"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

var teachCmd = &cobra.Command{
	Use:   "teach",
	Short: "Stream teacher examples as JSON lines",
	Long: `Teach loads the configured split, derives examples through the selected
teacher variant (transcript, knowledge, or generator), and writes one JSON
object per example to stdout.

The knowledge teacher emits one example per apprentice/wizard turn pair;
the transcript teacher one per raw utterance. Flags mirror the teacher's
knowledge-shaping options.`,
	RunE: runTeach,
}

func teacherConfig(cmd *cobra.Command) types.TeacherConfig {
	cfg := teacher.DefaultTeacherConfig()
	labelType, _ := cmd.Flags().GetString("label-type")
	cfg.LabelType = types.LabelType(labelType)
	cfg.IncludeKnowledge, _ = cmd.Flags().GetBool("include-knowledge")
	cfg.IncludeCheckedSentence, _ = cmd.Flags().GetBool("include-checked-sentence")
	cfg.KnowledgeSeparator, _ = cmd.Flags().GetBool("include-knowledge-separator")
	cfg.ChosenTopicDelimiter, _ = cmd.Flags().GetString("chosen-topic-delimiter")
	cfg.NumTopics, _ = cmd.Flags().GetInt("num-topics")
	return cfg
}

func generatorConfig(cmd *cobra.Command) types.GeneratorConfig {
	cfg := teacher.DefaultGeneratorConfig()
	cfg.TeacherConfig = teacherConfig(cmd)
	if !cmd.Flags().Changed("include-knowledge-separator") {
		cfg.KnowledgeSeparator = true
	}
	cfg.OnlyCheckedKnowledge, _ = cmd.Flags().GetBool("only-checked-knowledge")
	cfg.IgnorantDropout, _ = cmd.Flags().GetFloat64("ignorant-dropout")
	cfg.PrependGoldKnowledge, _ = cmd.Flags().GetBool("prepend-gold-knowledge")
	cfg.GoldKnowledgeDelimiter, _ = cmd.Flags().GetString("gold-knowledge-delimiter")
	cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	return cfg
}

// buildTeacher constructs the selected teacher variant over the data.
func buildTeacher(cmd *cobra.Command, data *dataset.Dataset) (teacher.Teacher, error) {
	variant, _ := cmd.Flags().GetString("teacher")
	switch variant {
	case "transcript":
		return teacher.NewTranscriptTeacher(data), nil
	case "knowledge", "":
		return teacher.NewDialogKnowledgeTeacher(data, teacherConfig(cmd)), nil
	case "generator":
		return teacher.NewGeneratorTeacher(data, generatorConfig(cmd)), nil
	default:
		return nil, fmt.Errorf("unknown teacher %q: use transcript, knowledge, or generator", variant)
	}
}

func runTeach(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)
	data, err := dataset.Load(cfg)
	if err != nil {
		return err
	}

	t, err := buildTeacher(cmd, data)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	enc := json.NewEncoder(os.Stdout)
	emitted := 0
	for ep := 0; ep < t.EpisodeCount(); ep++ {
		for entry := 0; entry < t.EpisodeLength(ep); entry++ {
			if limit > 0 && emitted >= limit {
				return nil
			}
			ex, err := t.Get(ep, entry)
			if err != nil {
				return err
			}
			if err := enc.Encode(ex); err != nil {
				return fmt.Errorf("encoding example: %w", err)
			}
			emitted++
		}
	}
	return nil
}

func init() {
	teachCmd.Flags().String("teacher", "knowledge", "teacher variant: transcript, knowledge, or generator")
	teachCmd.Flags().Int("limit", 0, "maximum examples to emit (0 = all)")

	teachCmd.Flags().String("label-type", "response", "label source: response or chosen_sent")
	teachCmd.Flags().Bool("include-knowledge", true, "include the knowledge available to the wizard")
	teachCmd.Flags().Bool("include-checked-sentence", false, "include the wizard's checked sentence")
	teachCmd.Flags().Bool("include-knowledge-separator", false, "include the __knowledge__ token between title and passage")
	teachCmd.Flags().String("chosen-topic-delimiter", "\n", "delimiter used when including the chosen topic")
	teachCmd.Flags().Int("num-topics", 5, "number of topic choices offered in interactive mode")

	teachCmd.Flags().Bool("only-checked-knowledge", false, "generator: provide only the checked sentence as knowledge")
	teachCmd.Flags().Float64("ignorant-dropout", 0.0, "generator: probability of erasing all knowledge (1 = completely ignorant)")
	teachCmd.Flags().Bool("prepend-gold-knowledge", false, "generator: prepend the checked sentence to the input text")
	teachCmd.Flags().String("gold-knowledge-delimiter", "\n", "delimiter between prepended knowledge and text")
	teachCmd.Flags().Int64("seed", 0, "dropout random seed (0 = time-based)")

	rootCmd.AddCommand(teachCmd)
}
