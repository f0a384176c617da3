// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dialogue-engine/internal/agent"
	"github.com/pdiddy/dialogue-engine/internal/world"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

var interactCmd = &cobra.Command{
	Use:   "interact",
	Short: "Chat with a knowledge-grounded response agent",
	Long: `Interact drives a live multi-turn conversation against an Ollama-backed
response agent. Each user message is wrapped with the current knowledge
sentence before the agent sees it.

In-chat commands:
  /know <sentence>   set the knowledge sentence for following turns
  /reset             clear the agent's conversation state
  /quit              exit`,
	RunE: runInteract,
}

func agentConfig(cmd *cobra.Command) types.AgentConfig {
	host, _ := cmd.Flags().GetString("host")
	if host == "" {
		host = viper.GetString("agent.host")
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("agent.model")
	}
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	numPredict, _ := cmd.Flags().GetInt("num-predict")

	return types.AgentConfig{
		Host:        host,
		Model:       model,
		Temperature: temperature,
		NumPredict:  numPredict,
	}
}

func runInteract(cmd *cobra.Command, args []string) error {
	model, err := agent.NewOllama(agentConfig(cmd))
	if err != nil {
		return err
	}

	delimiter, _ := cmd.Flags().GetString("gold-knowledge-delimiter")
	w := world.NewInteractiveWorld(types.WorldConfig{GoldKnowledgeDelimiter: delimiter}, model)

	fmt.Println("Enter a message, or /know, /reset, /quit.")

	knowledge := ""
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/reset":
			model.Reset()
			knowledge = ""
			fmt.Println("[ conversation reset ]")
			continue
		case strings.HasPrefix(line, "/know "):
			knowledge = strings.TrimSpace(strings.TrimPrefix(line, "/know "))
			fmt.Println("[ knowledge set ]")
			continue
		}

		reply, err := w.Parley(context.Background(), world.SampleInput{
			CheckedSentence: knowledge,
			Text:            line,
		})
		if err != nil {
			if errors.Is(err, world.ErrEpisodeDone) {
				fmt.Println("[ episode chat done ]")
				continue
			}
			return err
		}
		fmt.Println(reply)
	}

	return scanner.Err()
}

func init() {
	interactCmd.Flags().String("host", "", "Ollama server base URL (default: OLLAMA_HOST)")
	interactCmd.Flags().String("model", "", "Ollama model identifier")
	interactCmd.Flags().Float64("temperature", 0.7, "sampling temperature")
	interactCmd.Flags().Int("num-predict", 256, "maximum generated tokens per reply")
	interactCmd.Flags().String("gold-knowledge-delimiter", "\n", "delimiter between knowledge wrapper and user text")

	rootCmd.AddCommand(interactCmd)
}
