package cmd

// Config carries the environment-driven settings of the tracking service.
type Config struct {
	HTTPPort              string
	StorageDriver         string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	ClearPolicy           string
	ResumeIntervalSeconds int
}
