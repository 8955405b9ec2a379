package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/adapter/driven/export"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/adapter/driven/publish"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/adapter/driven/youtube"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/adapter/driving/web"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/application/usecase"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/repository"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
	"github.com/everydayham/youtube-monetization-dashboard-go/pkg/version"
)

// DefaultArtifactPath é o caminho padrão do artefato JSON, relativo ao
// diretório de trabalho. O mesmo caminho é servido pelo viewer.
const DefaultArtifactPath = "data/youtube_monetization.json"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	fetchCmd   *cobra.Command
	serveCmd   *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		console:    console,
		version:    versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "yt-monetization",
		Short:   "YouTube Monetization Dashboard CLI",
		Version: formattedVersion,
	}

	// Personaliza a template para incluir mais informações de versão
	rootCmd.SetVersionTemplate(`{{printf "YouTube Monetization Dashboard version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch monetization metrics from the YouTube Analytics API and publish the JSON artifact",
		RunE:  app.runFetch,
	}
	fetchCmd.Flags().IntP("days", "t", 30, "Reporting window length in days, ending yesterday")
	fetchCmd.Flags().String("currency", "USD", "Currency code for monetary metrics")
	fetchCmd.Flags().StringP("output", "o", DefaultArtifactPath, "Path of the published JSON artifact")
	fetchCmd.Flags().String("s3-bucket", "", "Publish the artifact to this S3 bucket instead of the local filesystem")
	fetchCmd.Flags().String("s3-key", DefaultArtifactPath, "Object key used when publishing to S3")
	fetchCmd.Flags().Int64("max-videos", 5, "Number of top earning videos to include")
	fetchCmd.Flags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	fetchCmd.Flags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf")
	fetchCmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page and the published JSON artifact over HTTP",
		RunE:  app.runServe,
	}
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
	serveCmd.Flags().StringP("data", "o", DefaultArtifactPath, "Path of the JSON artifact to serve")
	serveCmd.Flags().Int("poll-interval", 60, "Dashboard refresh interval in seconds")

	rootCmd.AddCommand(fetchCmd, serveCmd)

	app.rootCmd = rootCmd
	app.fetchCmd = fetchCmd
	app.serveCmd = serveCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseFetchArgs parses fetch command flags into a CLIArgs struct.
func (app *CLIApp) parseFetchArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	days, _ := cmd.Flags().GetInt("days")
	currency, _ := cmd.Flags().GetString("currency")
	outputPath, _ := cmd.Flags().GetString("output")
	s3Bucket, _ := cmd.Flags().GetString("s3-bucket")
	s3Key, _ := cmd.Flags().GetString("s3-key")
	maxVideos, _ := cmd.Flags().GetInt64("max-videos")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Days:       days,
		Currency:   currency,
		OutputPath: outputPath,
		S3Bucket:   s3Bucket,
		S3Key:      s3Key,
		MaxVideos:  maxVideos,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}

	if err := app.mergeConfigFile(cmd, args); err != nil {
		return nil, err
	}

	return args, nil
}

// mergeConfigFile aplica valores do arquivo de configuração sobre os
// argumentos. Flags passadas explicitamente na linha de comando têm
// precedência sobre o arquivo.
func (app *CLIApp) mergeConfigFile(cmd *cobra.Command, args *types.CLIArgs) error {
	if args.ConfigFile == "" {
		return nil
	}

	cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	if cfg.Days > 0 && !cmd.Flags().Changed("days") {
		args.Days = cfg.Days
	}
	if cfg.Currency != "" && !cmd.Flags().Changed("currency") {
		args.Currency = cfg.Currency
	}
	// O caminho do artefato é --output no fetch e --data no serve.
	outputFlag := "output"
	if cmd.Flags().Lookup(outputFlag) == nil {
		outputFlag = "data"
	}
	if cfg.OutputPath != "" && !cmd.Flags().Changed(outputFlag) {
		args.OutputPath = cfg.OutputPath
	}
	if cfg.S3Bucket != "" && !cmd.Flags().Changed("s3-bucket") {
		args.S3Bucket = cfg.S3Bucket
	}
	if cfg.S3Key != "" && !cmd.Flags().Changed("s3-key") {
		args.S3Key = cfg.S3Key
	}
	if cfg.MaxVideos > 0 && !cmd.Flags().Changed("max-videos") {
		args.MaxVideos = cfg.MaxVideos
	}
	if cfg.ReportName != "" && !cmd.Flags().Changed("report-name") {
		args.ReportName = cfg.ReportName
	}
	if len(cfg.ReportType) > 0 && !cmd.Flags().Changed("report-type") {
		args.ReportType = cfg.ReportType
	}
	if cfg.Dir != "" && !cmd.Flags().Changed("dir") {
		args.Dir = cfg.Dir
	}
	if cfg.ListenAddr != "" && cmd.Flags().Lookup("listen") != nil && !cmd.Flags().Changed("listen") {
		args.ListenAddr = cfg.ListenAddr
	}
	if cfg.PollInterval > 0 && cmd.Flags().Lookup("poll-interval") != nil && !cmd.Flags().Changed("poll-interval") {
		args.PollInterval = cfg.PollInterval
	}

	return nil
}

// loadCredentials monta o bundle de credenciais a partir do ambiente.
// Os valores são opacos e nunca devem ser logados.
func loadCredentials() (entity.CredentialBundle, error) {
	creds := entity.CredentialBundle{
		ClientID:     os.Getenv("YT_CLIENT_ID"),
		ClientSecret: os.Getenv("YT_CLIENT_SECRET"),
		RefreshToken: os.Getenv("YT_REFRESH_TOKEN"),
	}
	if err := creds.Validate(); err != nil {
		return entity.CredentialBundle{}, types.ErrMissingCredentials
	}
	return creds, nil
}

// runFetch é o ponto de entrada do comando fetch.
func (app *CLIApp) runFetch(cmd *cobra.Command, _ []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseFetchArgs(cmd)
	if err != nil {
		return err
	}

	creds, err := loadCredentials()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	analyticsRepo := youtube.NewAnalyticsRepository(creds, cliArgs.Currency)

	var publishRepo repository.PublishRepository
	if cliArgs.S3Bucket != "" {
		publishRepo, err = publish.NewS3Publisher(ctx, cliArgs.S3Bucket, cliArgs.S3Key)
		if err != nil {
			return err
		}
	} else {
		publishRepo = publish.NewLocalPublisher(cliArgs.OutputPath)
	}

	fetchUseCase := usecase.NewFetchUseCase(
		analyticsRepo,
		publishRepo,
		export.NewExportRepository(),
		app.console,
	)

	return fetchUseCase.Run(ctx, cliArgs)
}

// runServe é o ponto de entrada do comando serve.
func (app *CLIApp) runServe(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	configFile, _ := cmd.Flags().GetString("config-file")
	listenAddr, _ := cmd.Flags().GetString("listen")
	dataPath, _ := cmd.Flags().GetString("data")
	pollInterval, _ := cmd.Flags().GetInt("poll-interval")

	args := &types.CLIArgs{
		ConfigFile:   configFile,
		OutputPath:   dataPath,
		ListenAddr:   listenAddr,
		PollInterval: pollInterval,
	}
	if err := app.mergeConfigFile(cmd, args); err != nil {
		return err
	}
	if args.ListenAddr == "" {
		args.ListenAddr = listenAddr
	}
	if args.PollInterval <= 0 {
		args.PollInterval = pollInterval
	}

	server := web.NewServer(args.ListenAddr, args.OutputPath, time.Duration(args.PollInterval)*time.Second, app.console)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return server.Run(ctx)
}
