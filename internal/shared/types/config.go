package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Days         int      `json:"days" yaml:"days" toml:"days"`
	Currency     string   `json:"currency" yaml:"currency" toml:"currency"`
	OutputPath   string   `json:"output_path" yaml:"output_path" toml:"output_path"`
	S3Bucket     string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Key        string   `json:"s3_key" yaml:"s3_key" toml:"s3_key"`
	MaxVideos    int64    `json:"max_videos" yaml:"max_videos" toml:"max_videos"`
	ReportName   string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType   []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir          string   `json:"dir" yaml:"dir" toml:"dir"`
	ListenAddr   string   `json:"listen_addr" yaml:"listen_addr" toml:"listen_addr"`
	PollInterval int      `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
}
