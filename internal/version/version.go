package version

// Version is set at build time with -ldflags "-X github.com/CameronXie/storefront/internal/version.Version=..."
var Version = "dev"
