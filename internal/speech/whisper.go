package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Whisper ties the recorder and transcription client into a single
// listen step.
type Whisper struct {
	recorder *Recorder
	client   *Client
	logger   *slog.Logger
}

// NewWhisper builds a Whisper over the given recorder and client.
func NewWhisper(recorder *Recorder, client *Client, logger *slog.Logger) *Whisper {
	return &Whisper{recorder: recorder, client: client, logger: logger}
}

// Available reports whether the transcription server is reachable.
func (w *Whisper) Available(ctx context.Context) bool {
	return w.client.Available(ctx)
}

// Listen records one utterance and returns its transcription. Silence
// comes back as an empty string with no error. The temp WAV is removed
// before returning.
func (w *Whisper) Listen(ctx context.Context) (string, error) {
	f, err := os.CreateTemp("", "sayso-*.wav")
	if err != nil {
		return "", fmt.Errorf("speech: creating temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := w.recorder.Record(ctx, path); err != nil {
		return "", err
	}

	text, err := w.client.Transcribe(ctx, path)
	if err != nil {
		return "", err
	}
	w.logger.Debug("transcribed utterance", "text", text)
	return text, nil
}
