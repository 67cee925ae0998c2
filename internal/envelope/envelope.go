package envelope

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input errors are reported before any engine work starts
var (
	ErrNoInput      = errors.New("no input provided")
	ErrMissingData  = errors.New("missing document data")
	ErrMissingLevel = errors.New("missing compression level")
)

// Request is the single input frame read from stdin: base64 document bytes
// plus the compression level.
type Request struct {
	Data  []byte
	Level int
}

type rawRequest struct {
	Data  string          `json:"data"`
	Level json.RawMessage `json:"level"`
}

// Read consumes the whole input stream and decodes one request frame.
func Read(r io.Reader) (*Request, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, ErrNoInput
	}

	var req rawRequest
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		return nil, fmt.Errorf("invalid input envelope: %w", err)
	}

	if req.Data == "" {
		return nil, ErrMissingData
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid document data: %w", err)
	}

	level, err := parseLevel(req.Level)
	if err != nil {
		return nil, err
	}

	return &Request{Data: data, Level: level}, nil
}

// parseLevel accepts a JSON number or a numeric string; fractional values
// truncate toward zero.
func parseLevel(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, ErrMissingLevel
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return int(asNumber), nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		level, err := strconv.Atoi(strings.TrimSpace(asString))
		if err != nil {
			return 0, fmt.Errorf("invalid compression level %q", asString)
		}
		return level, nil
	}

	return 0, fmt.Errorf("invalid compression level %s", string(raw))
}

type successResponse struct {
	Success          bool    `json:"success"`
	Data             string  `json:"data"`
	OriginalSize     int64   `json:"original_size"`
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteSuccess emits the success envelope with the compressed bytes
// base64-encoded, followed by a newline.
func WriteSuccess(w io.Writer, data []byte, originalSize, compressedSize int64, ratio float64) error {
	return json.NewEncoder(w).Encode(successResponse{
		Success:          true,
		Data:             base64.StdEncoding.EncodeToString(data),
		OriginalSize:     originalSize,
		CompressedSize:   compressedSize,
		CompressionRatio: ratio,
	})
}

// WriteFailure emits the failure envelope.
func WriteFailure(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(failureResponse{
		Success: false,
		Error:   err.Error(),
	})
}
