package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reviewbench/reviewbench/internal/fetch"
	"github.com/reviewbench/reviewbench/internal/git"
	"github.com/reviewbench/reviewbench/internal/github"
	"github.com/reviewbench/reviewbench/internal/models"
	"github.com/reviewbench/reviewbench/internal/output"
	"github.com/reviewbench/reviewbench/internal/score"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui       *output.UI
	registry *models.Registry

	verbose   bool
	dryRun    bool
	tokenFlag string

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "reviewbench",
	Short: "Benchmark AI code reviewers against a known-issue pull request",
	Long: `reviewbench measures how well AI review models find planted issues.

It fetches the review comments each model posted on a benchmark pull
request, scores them against the known-issue catalog, and renders
comparison reports. It can also provision per-model test branches and
survey reviewer behavior across many pull requests.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/reviewbench/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "GitHub API token (overrides config and GITHUB_TOKEN)")
}

func initConfig() {
	// Local .env files feed the environment before viper reads it.
	_ = godotenv.Load()

	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "reviewbench")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REVIEWBENCH")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	viper.SetDefault("github.repo", "")
	viper.SetDefault("github.token", "")
	viper.SetDefault("output_dir", "benchmark_results")
	viper.SetDefault("scoring.variant", "weighted")
	viper.SetDefault("report.format", "all")
	viper.SetDefault("report.embed_chart", true)
	viper.SetDefault("models_file", "")
	viper.SetDefault("identity.reviewers", map[string]string{})
	viper.SetDefault("identity.markers", score.DefaultMarkers)
	viper.SetDefault("matrix.base_branch", "main")
	viper.SetDefault("matrix.fixture_path", "src/benchmark-test.ts")
	viper.SetDefault("matrix.workflow_dir", ".github/workflows")
	viper.SetDefault("matrix.review_workflow", "ai-pr-review.yml")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun

	// The model registry is loaded lazily so commands that never touch it
	// (config, version) work without a models file.
}

// getRegistry returns the shared model registry, loading it on first call.
func getRegistry() (*models.Registry, error) {
	if registry != nil {
		return registry, nil
	}

	path := viper.GetString("models_file")
	if path == "" {
		registry = models.DefaultRegistry()
		return registry, nil
	}

	r, err := models.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load models file: %w", err)
	}
	registry = r
	return registry, nil
}

// resolveToken picks the GitHub token: --token wins, then the config file,
// then GITHUB_TOKEN. Empty means run unauthenticated.
func resolveToken() string {
	explicit := tokenFlag
	if explicit == "" {
		explicit = viper.GetString("github.token")
	}
	return github.ResolveToken(explicit)
}

// requireRepo resolves the owner/name slug of the benchmark repository from
// config, falling back to the origin remote of the current directory.
func requireRepo() (string, error) {
	if repo := viper.GetString("github.repo"); repo != "" {
		return repo, nil
	}

	gc := git.NewClient()
	url, err := gc.RemoteURL(".")
	if err == nil && url != "" {
		owner, name, err := git.ExtractOwnerRepo(url)
		if err == nil {
			return owner + "/" + name, nil
		}
	}

	return "", fmt.Errorf("no repository configured (set github.repo or run inside a clone with an origin remote)")
}

// newGitHubClient builds an API client for the configured repository, or an
// error when none is configured.
func newGitHubClient() (*github.Client, error) {
	repo, err := requireRepo()
	if err != nil {
		return nil, err
	}
	return github.NewClient(repo, resolveToken(), nil)
}

// newFetcher builds the comment fetcher. Without a token it degrades to an
// empty fetch rather than failing, matching how runs without credentials
// still produce a report.
func newFetcher() (*fetch.Fetcher, string) {
	token := resolveToken()
	if token == "" {
		ui.VerboseLog("no GitHub token; fetch will degrade to an empty result")
		return fetch.New(nil), ""
	}

	repo, err := requireRepo()
	if err != nil {
		ui.Warning("%v; fetch will degrade to an empty result", err)
		return fetch.New(nil), ""
	}

	client, err := github.NewClient(repo, token, nil)
	if err != nil {
		ui.Warning("%v; fetch will degrade to an empty result", err)
		return fetch.New(nil), ""
	}

	return fetch.New(client), repo
}

// newResolver builds the comment-author resolver: explicit reviewer logins
// from the registry and config first, substring markers as the fallback.
func newResolver(reg *models.Registry) score.Resolver {
	mapping := reg.ReviewerMap()
	for login, model := range viper.GetStringMapString("identity.reviewers") {
		mapping[login] = model
	}

	markers := viper.GetStringSlice("identity.markers")
	if len(markers) == 0 {
		markers = score.DefaultMarkers
	}

	return score.ChainResolver{
		score.NewMapResolver(mapping),
		score.NewMarkerResolver(markers...),
	}
}

// outputDir resolves the report directory: the command flag wins over config.
func outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return viper.GetString("output_dir")
}
