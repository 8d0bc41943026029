package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Phishman81/seo-content-briefing-generator/internal/briefing"
	"github.com/Phishman81/seo-content-briefing-generator/internal/config"
	"github.com/Phishman81/seo-content-briefing-generator/internal/keywords"
	"github.com/Phishman81/seo-content-briefing-generator/internal/pipeline"
	"github.com/Phishman81/seo-content-briefing-generator/internal/server"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "seobrief",
	Short:   "SEO content briefings from AI analysis",
	Long:    "seobrief extracts article content, critiques it with an LLM, benchmarks it against top-ranking competitors, and composes a copywriter briefing.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("seobrief", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/seobrief/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure the LLM provider, search provider, and API key env vars.")
		return nil
	},
}

// --- analyze command ---

var (
	urlInput     string
	textInput    string
	textFile     string
	audience     string
	goal         string
	focusKeyword string
	keywordsFile string
	runBenchmark bool
	outputPath   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: capture -> analyze -> benchmark -> briefing",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := textInput
		if text == "" && textFile != "" {
			data, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("reading text file: %w", err)
			}
			text = string(data)
		}

		var rows []keywords.Row
		if keywordsFile != "" {
			f, err := os.Open(keywordsFile)
			if err != nil {
				return fmt.Errorf("opening keyword file: %w", err)
			}
			defer f.Close()
			rows, err = keywords.Load(f)
			if err != nil {
				return fmt.Errorf("parsing keyword file: %w", err)
			}
			fmt.Printf("Loaded %d keyword rows from %s\n", len(rows), keywordsFile)
		}

		meta := session.Meta{
			Audience:     audience,
			Goal:         goal,
			FocusKeyword: focusKeyword,
		}

		pipe := pipeline.New(cfg)
		sess := session.New()
		result := pipe.Run(context.Background(), sess, urlInput, text, meta, rows, runBenchmark)

		var failed bool
		for i, step := range result.Steps {
			fmt.Printf("\nStep %d: %s\n", i+1, step.Name)
			if step.Warning != "" {
				fmt.Printf("  Warning: %s\n", step.Warning)
			}
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
				failed = true
			} else if step.Summary != "" {
				fmt.Printf("  %s\n", step.Summary)
			}
		}
		if failed {
			return fmt.Errorf("pipeline did not complete")
		}

		out := outputPath
		if out == "" {
			out = briefing.Filename
		}
		if err := os.WriteFile(out, []byte(sess.Briefing()), 0o644); err != nil {
			return fmt.Errorf("writing briefing: %w", err)
		}
		fmt.Printf("\nBriefing written to %s\n", out)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&urlInput, "url", "", "URL of the article to analyze")
	analyzeCmd.Flags().StringVar(&textInput, "text", "", "Article text (takes precedence over --url)")
	analyzeCmd.Flags().StringVar(&textFile, "text-file", "", "Read article text from a file")
	analyzeCmd.Flags().StringVar(&audience, "audience", "", "Target audience of the article")
	analyzeCmd.Flags().StringVar(&goal, "goal", "", "Goal of the article")
	analyzeCmd.Flags().StringVar(&focusKeyword, "focus-keyword", "", "Focus keyword (required for benchmarking)")
	analyzeCmd.Flags().StringVar(&keywordsFile, "keywords", "", "CSV file with Keyword and Search Volume columns")
	analyzeCmd.Flags().BoolVar(&runBenchmark, "benchmark", false, "Benchmark against top-ranking competitor articles")
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Briefing output path (default "+briefing.Filename+")")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive briefing form",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(pipeline.New(cfg), port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}
