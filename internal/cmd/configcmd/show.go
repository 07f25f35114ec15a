package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/sitehl/internal/cmd/cmdutil"
	"github.com/open-cli-collective/sitehl/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current sitehl configuration with the source of every value.`,
		Example: `  # Show current config
  sitehl config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := cmdutil.GlobalsFrom(cmd)
			return runShow(cmd.OutOrStdout(), g.ResolvedConfigPath(), g.NoColor)
		},
	}

	return cmd
}

// fileKeys returns the top-level keys set in the config file at path.
func fileKeys(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	keys, fileErr := fileKeys(configPath)
	if fileErr != nil && !os.IsNotExist(fileErr) {
		return fileErr
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, key, value string, envVar string) {
		_, _ = bold.Fprintf(w, "%-16s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "default"
		if keys[key] {
			source = "config"
		}
		if envVar != "" && os.Getenv(envVar) != "" {
			source = envVar
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Public dir", "public_dir", cfg.PublicDir, "SITEHL_PUBLIC_DIR")
	printField("Include", "include", strings.Join(cfg.Include, ", "), "")
	printField("Exclude", "exclude", strings.Join(cfg.Exclude, ", "), "")
	printField("Minify", "minify", strconv.FormatBool(cfg.Minify), "SITEHL_MINIFY")
	printField("Chroma fallback", "chroma_fallback", strconv.FormatBool(cfg.ChromaFallback), "")
	printField("Style", "chroma_style", cfg.ChromaStyle, "SITEHL_CHROMA_STYLE")
	printField("Output", "output_format", cfg.OutputFormat, "")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
