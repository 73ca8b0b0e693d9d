package quark

// Version and BuildDate identify the build. Overridable at link time:
//
//	go build -ldflags "-X github.com/amolbrkr/quark-lang.Version=..."
var (
	Version   = "0.3.0"
	BuildDate = "dev"
)
