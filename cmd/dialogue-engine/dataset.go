// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/internal/teacher"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset episode, utterance, and example counts",
	Long: `Stats loads the transcript file for the configured split and prints
the number of dialogues, the number of utterances, and the number of
wizard-turn examples the dialog knowledge teacher would derive.`,
	RunE: runStats,
}

// datasetConfig builds the dataset config from flags, with viper
// fallback for values the flags leave at their defaults.
func datasetConfig(cmd *cobra.Command) types.DatasetConfig {
	dataPath, _ := cmd.Flags().GetString("data-path")
	if !cmd.Flags().Changed("data-path") && viper.IsSet("dataset.data_path") {
		dataPath = viper.GetString("dataset.data_path")
	}
	task, _ := cmd.Flags().GetString("task")
	if !cmd.Flags().Changed("task") && viper.IsSet("dataset.task") {
		task = viper.GetString("dataset.task")
	}
	split, _ := cmd.Flags().GetString("split")

	return types.DatasetConfig{
		DataPath: dataPath,
		Task:     task,
		Split:    types.Split(split),
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)

	data, err := dataset.Load(cfg)
	if err != nil {
		return err
	}

	kt := teacher.NewDialogKnowledgeTeacher(data, teacher.DefaultTeacherConfig())

	fmt.Printf("file:              %s\n", dataset.Path(cfg))
	fmt.Printf("dialogues:         %d\n", data.NumEpisodes())
	fmt.Printf("utterances:        %d\n", data.NumUtterances())
	fmt.Printf("wizard utterances: %d\n", data.NumWizardUtterances())
	fmt.Printf("examples:          %d\n", kt.ExampleCount())
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
