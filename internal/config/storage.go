package config

type StorageConfig struct {
	Provider  string `yaml:"provider"` // s3, local
	S3Region  string `yaml:"s3_region"`
	S3Bucket  string `yaml:"s3_bucket"`
	LocalPath string `yaml:"local_path"`
	LocalURL  string `yaml:"local_url"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		S3Region:  getEnv("STORAGE_S3_REGION", "us-east-1"),
		S3Bucket:  getEnv("STORAGE_S3_BUCKET", "fleetdesk-uploads"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:8080/uploads"),
	}
}
