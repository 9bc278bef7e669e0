package mylang

// Version and BuildDate are overridden at link time:
//
//	go build -ldflags "-X github.com/idan-at/mylang.Version=1.2.0 -X github.com/idan-at/mylang.BuildDate=2026-10-19"
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)
