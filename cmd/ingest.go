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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/promptran/internal"
)

var ingestInputFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Bulk-load translation pairs from a CSV file",
	Long: `Load translation pairs into the vector store from a CSV file with
four columns:

  source_language,target_language,sentence,translation

A header row matching the column names is skipped automatically. Each
sentence is embedded as it is loaded, so an OpenAI API key is required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(ingestInputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		svc, store, err := buildService()
		if err != nil {
			return err
		}
		defer store.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = 4

		var loaded, failed, row int
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read CSV row %d: %w", row+1, err)
			}
			row++

			if row == 1 && strings.EqualFold(record[0], "source_language") {
				continue
			}

			pair := internal.TranslationPair{
				SourceLanguage: record[0],
				TargetLanguage: record[1],
				Sentence:       record[2],
				Translation:    record[3],
			}
			if _, err := svc.AddPair(cmd.Context(), pair); err != nil {
				fmt.Fprintf(os.Stderr, "row %d: %v\n", row, err)
				failed++
				continue
			}
			loaded++

			if verbose && loaded%50 == 0 {
				fmt.Fprintf(os.Stderr, "Loaded %d pairs...\n", loaded)
			}
		}

		fmt.Printf("Loaded %d pairs (%d failed)\n", loaded, failed)
		if failed > 0 && loaded == 0 {
			return fmt.Errorf("all rows failed to load")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestInputFile, "input", "i", "", "CSV file to load (required)")
	_ = ingestCmd.MarkFlagRequired("input")
}
