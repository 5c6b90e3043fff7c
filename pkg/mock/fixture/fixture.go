package mock

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

//go:embed fixtures/*
var fixtures embed.FS

func JsonCompact(byteContent []byte) ([]byte, error) {
	compacted := new(bytes.Buffer)

	if !json.Valid(byteContent) {
		return []byte{}, fmt.Errorf("invalid JSON in fixture")
	}

	if err := json.Compact(compacted, byteContent); err != nil {
		return []byte{}, err
	}

	return compacted.Bytes(), nil
}

// Bytes returns the compacted JSON content of a fixture.
func Bytes(src string) []byte {
	sourceFile, err := fixtures.Open("fixtures/" + src)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to open source file: %v", err)
	}
	defer sourceFile.Close()

	content, err := io.ReadAll(sourceFile)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to read source file: %v", err)
	}

	compacted, err := JsonCompact(content)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to compact JSON: %v", err)
	}

	return compacted
}

func Read(src string) string {
	return string(Bytes(src))
}

// Decode unmarshals a fixture into v, e.g. an events.SQSEvent.
func Decode(src string, v any) {
	if err := json.Unmarshal(Bytes(src), v); err != nil {
		log.Fatal().Err(err).Str("fixture", src).Msg("failed to decode fixture")
	}
}
