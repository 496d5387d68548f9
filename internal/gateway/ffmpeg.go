package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	apperrors "github.com/aokihara/cliptrim/internal/errors"
	"github.com/rs/zerolog"
)

// Default encoding settings. Clips are re-encoded rather than stream-copied
// so cuts land on the requested timestamps instead of the nearest keyframe.
const (
	defaultVideoCodec = "libx264"
	defaultAudioCodec = "aac"
	defaultCRF        = "23"
)

// Gateway produces trimmed media files and still-frame thumbnails. Both
// operations are all-or-nothing: no partial artifact survives a failure.
type Gateway interface {
	// Trim cuts [start, end) seconds out of source into output and
	// returns the locator of the trimmed file.
	Trim(ctx context.Context, source string, start, end float64, output string) (string, error)

	// Thumbnail extracts a first-frame still from source into output and
	// returns the locator of the image.
	Thumbnail(ctx context.Context, source string, output string) (string, error)
}

// ffmpegGateway implements Gateway by shelling out to ffmpeg
type ffmpegGateway struct {
	runner     Runner
	ffmpegPath string
	logger     zerolog.Logger
}

// New creates a Gateway after resolving the ffmpeg binary. An empty
// ffmpegPath falls back to PATH lookup.
func New(logger zerolog.Logger, ffmpegPath string) (Gateway, error) {
	if ffmpegPath == "" {
		resolved, err := exec.LookPath("ffmpeg")
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeExternal, "ffmpeg not found in PATH")
		}
		ffmpegPath = resolved
	}

	return &ffmpegGateway{
		runner:     NewRunner(),
		ffmpegPath: ffmpegPath,
		logger:     logger.With().Str("component", "ffmpeg").Logger(),
	}, nil
}

// NewWithRunner creates a Gateway with a custom Runner (for testing)
func NewWithRunner(runner Runner, logger zerolog.Logger) Gateway {
	return &ffmpegGateway{
		runner:     runner,
		ffmpegPath: "ffmpeg",
		logger:     logger.With().Str("component", "ffmpeg").Logger(),
	}
}

// Trim cuts a segment from source into output
func (g *ffmpegGateway) Trim(ctx context.Context, source string, start, end float64, output string) (string, error) {
	duration := end - start
	if duration <= 0 {
		return "", apperrors.New(apperrors.CodeInvalidArg, "invalid clip range: end must be after start")
	}

	g.logger.Info().
		Str("source", source).
		Str("output", output).
		Float64("start", start).
		Float64("duration", duration).
		Msg("trimming clip")

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", source,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-c:v", defaultVideoCodec,
		"-c:a", defaultAudioCodec,
		"-crf", defaultCRF,
		output,
	}

	if _, err := g.runner.Run(ctx, g.ffmpegPath, args...); err != nil {
		g.removePartial(output)
		return "", apperrors.Wrap(err, apperrors.CodeExternal, formatFFmpegError(err, "trim"))
	}

	g.logger.Info().Str("output", output).Msg("trim complete")
	return output, nil
}

// Thumbnail extracts a first-frame still from source into output
func (g *ffmpegGateway) Thumbnail(ctx context.Context, source string, output string) (string, error) {
	g.logger.Info().
		Str("source", source).
		Str("output", output).
		Msg("extracting thumbnail")

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", source,
		"-frames:v", "1",
		"-q:v", "2",
		output,
	}

	if _, err := g.runner.Run(ctx, g.ffmpegPath, args...); err != nil {
		g.removePartial(output)
		return "", apperrors.Wrap(err, apperrors.CodeExternal, formatFFmpegError(err, "thumbnail"))
	}

	return output, nil
}

// removePartial deletes a half-written artifact after a failed run
func (g *ffmpegGateway) removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		g.logger.Warn().Err(err).Str("path", path).Msg("failed to remove partial output")
	}
}

// formatSeconds renders a seconds value the way ffmpeg expects it
func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3f", seconds)
}

// formatFFmpegError provides user-friendly error messages for ffmpeg failures
func formatFFmpegError(err error, operation string) string {
	errMsg := err.Error()

	// cmd.Output keeps ffmpeg's stderr inside the ExitError
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		errMsg = strings.TrimSpace(string(exitErr.Stderr))
	}

	switch {
	case strings.Contains(errMsg, "No such file or directory"):
		return "source video not found - please check the file path"
	case strings.Contains(errMsg, "Invalid data found when processing input"):
		return "source file is not a playable video"
	case strings.Contains(errMsg, "Permission denied"):
		return "permission denied reading the source or writing the output"
	case strings.Contains(errMsg, "Invalid duration"):
		return "invalid time range for this video"
	case strings.Contains(errMsg, "executable file not found"):
		return "ffmpeg is not installed or not found in PATH. Please install ffmpeg"
	default:
		return fmt.Sprintf("%s failed - %s", operation, errMsg)
	}
}
