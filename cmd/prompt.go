/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	promptSourceLang string
	promptTargetLang string
	promptSentence   string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Generate a translation prompt for one sentence",
	Long: `Generate a translation prompt grounded in similar stored pairs and
print it to stdout. Requires an OpenAI API key to embed the query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, store, err := buildService()
		if err != nil {
			return err
		}
		defer store.Close()

		text, err := svc.GeneratePrompt(cmd.Context(), promptSourceLang, promptTargetLang, promptSentence)
		if err != nil {
			return fmt.Errorf("failed to generate prompt: %w", err)
		}

		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringVarP(&promptSourceLang, "source", "s", "", "source language code (required)")
	promptCmd.Flags().StringVarP(&promptTargetLang, "target", "t", "", "target language code (required)")
	promptCmd.Flags().StringVarP(&promptSentence, "sentence", "q", "", "sentence to translate (required)")
	_ = promptCmd.MarkFlagRequired("source")
	_ = promptCmd.MarkFlagRequired("target")
	_ = promptCmd.MarkFlagRequired("sentence")
}
