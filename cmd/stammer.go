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

	"github.com/valpere/promptran/internal/stammer"
)

var (
	stammerSource      string
	stammerTranslation string
)

var stammerCmd = &cobra.Command{
	Use:   "stammer",
	Short: "Check a translation for non-natural repetition",
	Long: `Check whether a translated sentence contains stammering: character
elongations or back-to-back phrase loops that do not mirror the source
sentence. Runs entirely locally; no store or API key needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		has := stammer.Detect(stammerSource, stammerTranslation)
		fmt.Printf("has_stammer: %v\n", has)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stammerCmd)

	stammerCmd.Flags().StringVarP(&stammerSource, "source", "s", "", "source sentence (required)")
	stammerCmd.Flags().StringVarP(&stammerTranslation, "translation", "t", "", "translated sentence (required)")
	_ = stammerCmd.MarkFlagRequired("source")
	_ = stammerCmd.MarkFlagRequired("translation")
}
