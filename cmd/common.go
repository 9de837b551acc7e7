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
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/promptran/internal/embedding"
	"github.com/valpere/promptran/internal/service"
	"github.com/valpere/promptran/internal/vectorstore"
)

// openAIKey resolves the API key from config or the conventional env var.
func openAIKey() string {
	if key := viper.GetString("openai_api_key"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// buildService assembles the embedder, vector store and service from the
// effective configuration. The returned store must be closed by the caller.
func buildService() (*service.Service, *vectorstore.Store, error) {
	embedder, err := embedding.NewOpenAIEmbedder(embedding.Config{
		APIKey:            openAIKey(),
		BaseURL:           viper.GetString("embedding.base_url"),
		Model:             viper.GetString("embedding.model"),
		RequestsPerSecond: viper.GetFloat64("embedding.requests_per_second"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure embedder: %w", err)
	}

	store, err := vectorstore.New(viper.GetString("db"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("cache_ttl"))
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}

	svc := service.New(embedder, store, service.Config{
		MaxExamples: viper.GetInt("max_examples"),
		SearchK:     viper.GetInt("search_k"),
		CacheTTL:    cacheTTL,
	})
	return svc, store, nil
}
