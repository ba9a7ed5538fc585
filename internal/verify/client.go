// Package verify submits finished game results to the proof service.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game"
)

// DefaultPath is the proof endpoint on the verification service
const DefaultPath = "/battleship/generate-proof"

// ErrDisabled is returned when submission is switched off in config
var ErrDisabled = errors.New("result verification is disabled")

// Kind classifies a failed submission
type Kind int

const (
	KindTransport Kind = iota
	KindBadRequest
	KindServer
	KindUnexpectedStatus
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBadRequest:
		return "bad-request"
	case KindServer:
		return "server"
	case KindUnexpectedStatus:
		return "unexpected-status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is returned for every failed submission
type Error struct {
	Kind       Kind
	StatusCode int // zero for transport errors
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBadRequest:
		return "bad request: check the submitted game result"
	case KindServer:
		return "verification server error, try again later"
	case KindUnexpectedStatus:
		return fmt.Sprintf("unexpected status %d from verification service", e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("decode verification response: %v", e.Err)
	default:
		return fmt.Sprintf("verification request failed: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Receipt is the service's answer to an accepted result
type Receipt struct {
	Success    bool            `json:"success"`
	ProofHash  string          `json:"proofHash"`
	Username   string          `json:"username"`
	GameResult game.GameResult `json:"game_result"`
	Timestamp  int64           `json:"timestamp"` // unix milliseconds
	Verified   bool            `json:"verified"`
}

type submitRequest struct {
	Username   string          `json:"username"`
	GameResult game.GameResult `json:"game_result"`
}

// Submitter is what the game manager needs from a verification client
type Submitter interface {
	Submit(ctx context.Context, username string, result game.GameResult) (*Receipt, error)
}

// Client talks to the verification service over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Submitter = (*Client)(nil)

// NewClient creates a client for baseURL+path. An empty path means DefaultPath.
func NewClient(baseURL, path string, timeout time.Duration, logger zerolog.Logger) *Client {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + path,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "Verifier").Logger(),
	}
}

// NewClientFromConfig builds a client from the verifier section of cfg,
// or returns ErrDisabled
func NewClientFromConfig(cfg config.VerifierConfig, logger zerolog.Logger) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("verifier.base_url is required when verification is enabled")
	}
	return NewClient(cfg.BaseURL, cfg.Path, cfg.Timeout(), logger), nil
}

// Endpoint returns the full URL results are posted to
func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts one result. It does not retry.
func (c *Client) Submit(ctx context.Context, username string, result game.GameResult) (*Receipt, error) {
	body, err := json.Marshal(submitRequest{Username: username, GameResult: result})
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info().
		Str("username", username).
		Int("ships_sunk", result.ShipsSunk).
		Int("total_shots", result.TotalShots).
		Float64("hit_percentage", result.HitPercentage).
		Bool("winner", result.Winner).
		Msg("Submitting game result")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Verification request failed")
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, c.fail(&Error{Kind: KindBadRequest, StatusCode: resp.StatusCode})
	case http.StatusInternalServerError:
		return nil, c.fail(&Error{Kind: KindServer, StatusCode: resp.StatusCode})
	default:
		return nil, c.fail(&Error{Kind: KindUnexpectedStatus, StatusCode: resp.StatusCode})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&Error{Kind: KindTransport, StatusCode: resp.StatusCode, Err: err})
	}

	var receipt Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, c.fail(&Error{Kind: KindDecode, StatusCode: resp.StatusCode, Err: err})
	}

	c.logger.Info().
		Str("username", receipt.Username).
		Str("proof_hash", receipt.ProofHash).
		Int64("timestamp", receipt.Timestamp).
		Bool("verified", receipt.Verified).
		Msg("Game result verified")

	return &receipt, nil
}

func (c *Client) fail(err *Error) *Error {
	c.logger.Warn().
		Str("kind", err.Kind.String()).
		Int("status", err.StatusCode).
		Err(err).
		Msg("Verification rejected")
	return err
}
