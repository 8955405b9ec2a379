package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile   string
	Days         int
	Currency     string
	OutputPath   string
	S3Bucket     string
	S3Key        string
	MaxVideos    int64
	ReportName   string
	ReportType   []string
	Dir          string
	ListenAddr   string
	PollInterval int
}
