package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrPostsDirRequired       = runtimeconfig.ErrPostsDirRequired
	ErrPostsPatternInvalid    = runtimeconfig.ErrPostsPatternInvalid
	ErrHistoryTimeoutInvalid  = runtimeconfig.ErrHistoryTimeoutInvalid
	ErrHistoryRetriesInvalid  = runtimeconfig.ErrHistoryRetriesInvalid
	ErrBuildWorkersInvalid    = runtimeconfig.ErrBuildWorkersInvalid
	ErrSiteBaseURLRequired    = runtimeconfig.ErrSiteBaseURLRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	PostsConfig   = runtimeconfig.PostsConfig
	HistoryConfig = runtimeconfig.HistoryConfig
	BuildConfig   = runtimeconfig.BuildConfig
	SiteConfig    = runtimeconfig.SiteConfig
	RenderConfig  = runtimeconfig.RenderConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
