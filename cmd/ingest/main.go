package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	apiURL := flag.String("api", "", "Base URL of the running API (default: http://localhost:$API_PORT)")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ingest [-api URL] FILE [FILE...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*apiURL, flag.Args()); err != nil {
		log.Error().Err(err).Msg("ingest failed")
		os.Exit(1)
	}
}

func run(apiURL string, files []string) error {
	_ = godotenv.Load()

	if apiURL == "" {
		port := os.Getenv("API_PORT")
		if port == "" {
			port = "18080"
		}
		apiURL = "http://localhost:" + port
	}

	request := models.IngestRequest{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		request.Documents = append(request.Documents, models.IngestDocument{
			SourceName: filepath.Base(file),
			Content:    string(content),
		})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(apiURL+"/api/v1/ingest", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, payload)
	}

	var response models.IngestResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return err
	}

	for _, doc := range response.Documents {
		log.Info().
			Str("source", doc.SourceName).
			Int("stored", doc.StoredChunks).
			Int("duplicates", doc.DuplicateChunks).
			Msg("Document ingested")
	}

	log.Info().
		Int("stored", response.TotalStored).
		Int("duplicates", response.TotalDuplicates).
		Msg("Ingest complete")

	return nil
}
