package static

// Config holds configuration for static file serving.
type Config struct {
	// Root is the directory files are served from.
	Root string `mapstructure:"root" default:"."`
	// Browse enables directory listings for directories without an index file.
	Browse bool `mapstructure:"browse" default:"true"`
	// Index is the file served for a directory request when present.
	Index string `mapstructure:"index" default:"index.html"`
}
