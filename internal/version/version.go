package version

// Version is the current auto-recon release
const Version = "1.1.0"
