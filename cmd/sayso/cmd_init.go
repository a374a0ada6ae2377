package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/shahar-caura/sayso/internal/config"
	"github.com/shahar-caura/sayso/internal/speech"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize sayso.yaml and a starter catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdInit()
		},
	}
}

// cmdInit runs an interactive wizard to generate sayso.yaml and, when
// missing, a starter commands.yaml.
func cmdInit() error {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("checking stdin: %w", err)
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("sayso init requires an interactive terminal")
	}

	scanner := bufio.NewScanner(os.Stdin)

	// Overwrite guard.
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if !promptYesNo(scanner, "sayso.yaml already exists. Overwrite?", false) {
			return fmt.Errorf("aborted")
		}
	}

	fmt.Println("Initializing sayso.yaml...")

	// === Catalog ===
	fmt.Println("\n=== Catalog ===")
	catalogPath := promptString(scanner, "Catalog file", "commands.yaml")
	watch := promptYesNo(scanner, "Reload the catalog when it changes?", false)

	// === Resolver ===
	fmt.Println("\n=== Resolver ===")
	threshold := promptString(scanner, "Fuzzy match threshold (0-1)", "0.75")
	if v, err := strconv.ParseFloat(threshold, 64); err != nil || v < 0 || v > 1 {
		return fmt.Errorf("threshold must be a number between 0 and 1")
	}

	data := initData{
		CatalogPath: catalogPath,
		Watch:       watch,
		Threshold:   threshold,
	}

	// === Optional: Speech ===
	if promptYesNo(scanner, "\nConfigure voice input?", false) {
		fmt.Println("\n=== Speech ===")
		data.Speech = true
		data.ServerURL = promptString(scanner, "Transcription server URL", "http://localhost:8000")
		data.RecordCmd = promptString(scanner, "Record command", speech.DefaultRecordCommand)
		data.Timeout = promptString(scanner, "Transcription timeout", "15s")
	}

	tmpl, err := template.New("sayso.yaml").Parse(saysoYAMLTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if err := writeFileAtomic(defaultConfigPath, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", defaultConfigPath, err)
	}
	fmt.Printf("\nWrote %s\n", defaultConfigPath)

	// Seed a catalog so the assistant has something to resolve against.
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		if err := writeFileAtomic(catalogPath, []byte(starterCatalog)); err != nil {
			return fmt.Errorf("writing %s: %w", catalogPath, err)
		}
		fmt.Printf("Wrote %s\n", catalogPath)
	} else {
		fmt.Printf("Keeping existing %s\n", catalogPath)
	}

	fmt.Fprintf(os.Stderr, "\nTip: environment overrides can live in %s or ./.sayso.env.\n", config.GlobalEnvPath())
	return nil
}

// writeFileAtomic writes via a temp file and rename so an interrupted
// init cannot leave a half-written file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return err
	}
	return nil
}

type initData struct {
	CatalogPath string
	Watch       bool
	Threshold   string

	Speech    bool
	ServerURL string
	RecordCmd string
	Timeout   string
}

const saysoYAMLTemplate = `# Sayso configuration
# Environment variables are resolved at load time: ${VAR_NAME}

catalog:
  path: {{.CatalogPath}}
  watch: {{.Watch}}

resolver:
  threshold: {{.Threshold}}
{{if .Speech}}
speech:
  enabled: true
  server_url: {{.ServerURL}}
  record_cmd: "{{.RecordCmd}}"
  timeout: {{.Timeout}}
{{else}}
# speech:
#   enabled: true
#   server_url: http://localhost:8000
#   record_cmd: "arecord -q -f S16_LE -r 16000 -c 1 -d 5 {{"{{.Path}}"}}"
#   timeout: 15s
{{end}}
# Apps, browsers, websites and the danger list have built-in defaults;
# override them here when yours differ.
# apps:
#   chrome: google-chrome
#   files: nautilus
# browsers:
#   chrome: google-chrome
# websites:
#   youtube: https://www.youtube.com
# danger:
#   - shutdown
#   - delete
`

const starterCatalog = `# Sayso command catalog. Names and aliases are matched against what you
# say or type; entries with an exec line run through the shell.
commands:
  - name: open-app
    aliases: [open application]

  - name: list-files
    exec: ls -la
    aliases: [show files]

  - name: disk-usage
    exec: df -h
    aliases: [disk space]

  - name: system-info
    exec: uname -a

  - name: quit
    aliases: [goodbye]
`

func promptString(scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	scanner.Scan()
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return defaultVal
	}
	return input
}

func promptYesNo(scanner *bufio.Scanner, label string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Printf("%s %s: ", label, hint)
	scanner.Scan()
	input := strings.TrimSpace(strings.ToLower(scanner.Text()))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}
