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
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/promptran/internal/vectorstore"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Inspect the stored translation-pair corpus",
}

var pairsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored-pair counts per language pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := vectorstore.New(viper.GetString("db"))
		if err != nil {
			return fmt.Errorf("failed to open vector store: %w", err)
		}
		defer store.Close()

		total, perPair, err := store.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		if total == 0 {
			fmt.Println("No translation pairs stored.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tTARGET\tPAIRS")
		for _, ps := range perPair {
			fmt.Fprintf(w, "%s\t%s\t%d\n", ps.SourceLang, ps.TargetLang, ps.Count)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nTotal pairs: %d\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
	pairsCmd.AddCommand(pairsStatsCmd)
}
