package speech

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"text/template"
)

// DefaultRecordCommand captures up to five seconds of 16 kHz mono 16-bit
// audio, the format the whisper server expects.
const DefaultRecordCommand = "arecord -q -f S16_LE -r 16000 -c 1 -d 5 {{.Path}}"

// Recorder records microphone input to a WAV file by shelling out to a
// configurable record command.
type Recorder struct {
	tmpl   *template.Template
	logger *slog.Logger

	// commandContext is overridable for testing.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewRecorder parses the record command template. The template must
// reference {{.Path}}, which is substituted with the output file. An
// empty command selects DefaultRecordCommand.
func NewRecorder(command string, logger *slog.Logger) (*Recorder, error) {
	if command == "" {
		command = DefaultRecordCommand
	}
	if !strings.Contains(command, "{{.Path}}") {
		return nil, fmt.Errorf("speech: record command has no {{.Path}} placeholder")
	}
	tmpl, err := template.New("record").Parse(command)
	if err != nil {
		return nil, fmt.Errorf("speech: parsing record command: %w", err)
	}
	return &Recorder{
		tmpl:           tmpl,
		logger:         logger,
		commandContext: exec.CommandContext,
	}, nil
}

// Record captures audio into the file at path, blocking until the record
// command exits.
func (r *Recorder) Record(ctx context.Context, path string) error {
	var line bytes.Buffer
	if err := r.tmpl.Execute(&line, struct{ Path string }{path}); err != nil {
		return fmt.Errorf("speech: rendering record command: %w", err)
	}

	args := strings.Fields(line.String())
	if len(args) == 0 {
		return fmt.Errorf("speech: record command is empty")
	}

	r.logger.Debug("recording", "cmd", args[0], "path", path)
	out, err := r.commandContext(ctx, args[0], args[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("speech: recording failed: %w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}
